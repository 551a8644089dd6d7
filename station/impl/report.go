package impl

import (
	"bytes"
	"path/filepath"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// writeReport renders the run chart to a PDF next to the data files.
// Best-effort: a missing wkhtmltopdf binary only costs a warning.
func (s *stationImpl) writeReport() {
	line := s.createBaseGraph()
	if line == nil {
		return
	}
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.logger.Warnf("cannot render report chart: %s", err.Error())
		return
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		s.logger.Warnf("cannot create PDF generator: %s", err.Error())
		return
	}
	pdfg.AddPage(wkhtmltopdf.NewPageReader(&buf))
	if err := pdfg.Create(); err != nil {
		s.logger.Warnf("cannot create PDF report: %s", err.Error())
		return
	}

	path := filepath.Join(s.cfg.DataDir, "run_report.pdf")
	if err := pdfg.WriteFile(path); err != nil {
		s.logger.Warnf("cannot write PDF report: %s", err.Error())
		return
	}
	s.logger.Infof("run report written to %s", path)
}
