package sensor

import (
	"errors"
	"math/rand"
	"time"
)

// simDriver produces a slow random walk around room conditions. It exists
// so the station can run on machines without a sensor attached, and it
// misses reads at a configurable rate to exercise the retry path.
type simDriver struct {
	rng         *rand.Rand
	temperature float64
	humidity    float64
	failureRate float64
}

// NewSimulated returns a driver that needs no hardware. failureRate is
// the fraction of reads reported as transient failures, in [0, 1).
func NewSimulated(seed int64, failureRate float64) Driver {
	return &simDriver{
		rng:         rand.New(rand.NewSource(seed)),
		temperature: 21.0,
		humidity:    45.0,
		failureRate: failureRate,
	}
}

func (d *simDriver) Read() (Reading, error) {
	if d.rng.Float64() < d.failureRate {
		return Reading{}, Transient(errors.New("checksum mismatch"))
	}
	d.temperature += d.rng.Float64() - 0.5
	d.humidity += (d.rng.Float64() - 0.5) * 2
	if d.humidity < 0 {
		d.humidity = 0
	}
	if d.humidity > 100 {
		d.humidity = 100
	}
	return NewReading(time.Now(), d.temperature, d.humidity), nil
}

func (d *simDriver) Release() error { return nil }

func (d *simDriver) Model() Model { return Simulated }

func (d *simDriver) MinInterval() time.Duration { return 0 }
