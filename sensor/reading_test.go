package sensor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReadingRounding(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 500000000, time.Local)

	tests := []struct {
		name     string
		celsius  float64
		humidity float64
		wantC    float64
		wantF    float64
		wantH    float64
	}{
		{"whole values", 20.0, 50.0, 20.0, 68.0, 50.0},
		{"rounds down", 21.34, 45.84, 21.3, 70.3, 45.8},
		{"rounds up", 21.35, 45.85, 21.4, 70.5, 45.9},
		{"negative", -10.06, 30.0, -10.1, 13.8, 30.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReading(now, tt.celsius, tt.humidity)
			assert.Equal(t, tt.wantC, r.TemperatureC)
			assert.Equal(t, tt.wantF, r.TemperatureF)
			assert.Equal(t, tt.wantH, r.Humidity)
			assert.Equal(t, now.Truncate(time.Second), r.Time)
		})
	}
}

func TestFahrenheitDerivation(t *testing.T) {
	// For every reading, F must equal C*9/5+32 at one decimal place.
	for c := -20.0; c <= 60.0; c += 0.1 {
		r := NewReading(time.Now(), c, 50)
		want := round1(r.TemperatureC*9/5 + 32)
		if r.TemperatureF != want {
			t.Fatalf("celsius %.1f: got %.1f°F, want %.1f°F", r.TemperatureC, r.TemperatureF, want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(Transient(errors.New("checksum mismatch"))))
	assert.False(t, IsTransient(errors.New("device handle invalid")))
	assert.False(t, IsTransient(nil))
}

func TestSimulatedDriver(t *testing.T) {
	d := NewSimulated(1, 0)
	for i := 0; i < 10; i++ {
		r, err := d.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if r.Humidity < 0 || r.Humidity > 100 {
			t.Errorf("humidity out of range: %.1f", r.Humidity)
		}
	}

	failing := NewSimulated(1, 1)
	_, err := failing.Read()
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
