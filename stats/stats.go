// Package stats computes run statistics by re-scanning the run's CSV
// file. It is a pure read-side view: nothing here is incrementally
// maintained, the CSV rows are the only source of truth.
package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ddx/envstation/sensor"
)

// Aggregate holds min/max/average over one measured quantity.
type Aggregate struct {
	Min float64
	Max float64
	Avg float64
}

// Summary is the statistics over all readings persisted so far in one
// run's CSV file.
type Summary struct {
	Count       int
	Temperature Aggregate
	Humidity    Aggregate
}

func (s *Summary) String() string {
	if s.Count == 0 {
		return "no readings recorded"
	}
	return fmt.Sprintf(
		"%d readings, temperature %.1f-%.1f°C (avg %.1f°C), humidity %.1f-%.1f%% (avg %.1f%%)",
		s.Count,
		s.Temperature.Min, s.Temperature.Max, s.Temperature.Avg,
		s.Humidity.Min, s.Humidity.Max, s.Humidity.Avg,
	)
}

// FromCSV re-scans one run's CSV file and aggregates it.
func FromCSV(path string) (*Summary, error) {
	readings, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	s := &Summary{Count: len(readings)}
	if s.Count == 0 {
		return s, nil
	}
	s.Temperature = aggregate(readings, func(r sensor.Reading) float64 { return r.TemperatureC })
	s.Humidity = aggregate(readings, func(r sensor.Reading) float64 { return r.Humidity })
	return s, nil
}

func aggregate(readings []sensor.Reading, value func(sensor.Reading) float64) Aggregate {
	agg := Aggregate{Min: value(readings[0]), Max: value(readings[0])}
	sum := 0.0
	for _, r := range readings {
		v := value(r)
		if v < agg.Min {
			agg.Min = v
		}
		if v > agg.Max {
			agg.Max = v
		}
		sum += v
	}
	agg.Avg = sum / float64(len(readings))
	return agg
}

// LoadCSV reads all readings back from a run's CSV file. Malformed rows
// are skipped.
func LoadCSV(path string) ([]sensor.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var readings []sensor.Reading
	for i, row := range records {
		if i == 0 && len(row) > 0 && row[0] == "timestamp" {
			continue
		}
		if len(row) < 4 {
			continue
		}
		t, err := time.ParseInLocation(sensor.TimeLayout, row[0], time.Local)
		if err != nil {
			continue
		}
		celsius, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		fahrenheit, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		humidity, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			continue
		}
		readings = append(readings, sensor.Reading{
			Time:         t,
			TemperatureC: celsius,
			TemperatureF: fahrenheit,
			Humidity:     humidity,
		})
	}
	return readings, nil
}
