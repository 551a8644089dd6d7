package sensor

import (
	"fmt"
	"math"
	"time"
)

// TimeLayout is the timestamp format used in CSV rows and console output.
// Second resolution, local time.
const TimeLayout = "2006-01-02T15:04:05"

// Reading is one complete measurement taken from a sensor. The driver
// yields a full temperature/humidity pair or nothing, never a partial
// reading. Values are rounded to one decimal place at creation and not
// mutated afterwards.
type Reading struct {
	Time         time.Time `json:"timestamp"`
	TemperatureC float64   `json:"temperature_c"`
	TemperatureF float64   `json:"temperature_f"`
	Humidity     float64   `json:"humidity_percent"`
}

// NewReading builds a Reading from raw driver values. Fahrenheit is
// derived from the rounded Celsius value so the two stay consistent at
// one decimal place.
func NewReading(t time.Time, celsius, humidity float64) Reading {
	c := round1(celsius)
	return Reading{
		Time:         t.Truncate(time.Second),
		TemperatureC: c,
		TemperatureF: round1(c*9/5 + 32),
		Humidity:     round1(humidity),
	}
}

func (r Reading) String() string {
	return fmt.Sprintf("%s | Temperature: %.1f°C / %.1f°F | Humidity: %.1f%%",
		r.Time.Format(TimeLayout), r.TemperatureC, r.TemperatureF, r.Humidity)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
