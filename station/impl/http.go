package impl

import (
	"io"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/ddx/envstation/stats"
)

func (s *stationImpl) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s.createGraph(w)
}

func (s *stationImpl) createGraph(w io.Writer) {
	line := s.createBaseGraph()
	if line == nil {
		return
	}
	err := line.Render(w)
	if err != nil {
		s.logger.Infof("Unable to render graph. %v", err.Error())
	}
}

func (s *stationImpl) createBaseGraph() *charts.Line {
	if s.csvPath == "" {
		s.logger.Warn("no CSV sink enabled, nothing to graph")
		return nil
	}
	readings, err := stats.LoadCSV(s.csvPath)
	if err != nil {
		s.logger.Warnf("cannot load readings for graph: %s", err.Error())
		return nil
	}

	xTime := make([]time.Time, len(readings))
	yTemperature := make([]opts.LineData, len(readings))
	yHumidity := make([]opts.LineData, len(readings))
	for i, r := range readings {
		xTime[i] = r.Time
		yTemperature[i] = opts.LineData{Value: r.TemperatureC}
		yHumidity[i] = opts.LineData{Value: r.Humidity}
	}

	// set some global options like Title/Legend/ToolTip or anything else
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithDataZoomOpts(opts.DataZoom{}),
		charts.WithTitleOpts(opts.Title{Title: "Temperature and humidity"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "axis",
			TriggerOn: "mousemove",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: true,
			},
		}))
	line.SetXAxis(xTime).
		AddSeries("Temperature °C", yTemperature).
		AddSeries("Humidity %", yHumidity)
	s.logger.Infof("build graph based on %d readings", len(readings))
	return line
}
