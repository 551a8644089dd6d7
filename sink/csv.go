package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ddx/envstation/sensor"
)

// Header is the first row of every run's CSV file.
var Header = []string{"timestamp", "temperature_c", "temperature_f", "humidity_percent"}

// CSV appends readings to a timestamp-named file, one per run. The file
// is reopened in append mode for every write, so a crash loses at most
// the in-flight row and never corrupts prior rows.
type CSV struct {
	path string
}

// NewCSV creates the run's CSV file in dir and writes the header row.
func NewCSV(dir string, model sensor.Model, start time.Time) (*CSV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}
	name := fmt.Sprintf("%s_data_%s.csv", model, start.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot create csv file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &CSV{path: path}, nil
}

func (c *CSV) Name() string { return "csv" }

// Path returns the file this run is writing to.
func (c *CSV) Path() string { return c.path }

func (c *CSV) Append(r sensor.Reading) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write([]string{
		r.Time.Format(sensor.TimeLayout),
		fmt.Sprintf("%.1f", r.TemperatureC),
		fmt.Sprintf("%.1f", r.TemperatureF),
		fmt.Sprintf("%.1f", r.Humidity),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close is a no-op; the file handle is not held between appends.
func (c *CSV) Close() error { return nil }
