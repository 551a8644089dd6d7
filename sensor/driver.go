// Package sensor defines the Reading data model and the driver capability
// the station polls. The low-level sensor protocols (bit timing, checksum
// verification) belong to the external driver libraries; this package only
// adapts them to a common interface and error taxonomy.
package sensor

import (
	"errors"
	"time"
)

// Model identifies a supported sensor model.
type Model string

const (
	DHT11     Model = "dht11"
	DHT22     Model = "dht22"
	BME280    Model = "bme280"
	Simulated Model = "simulated"
)

// Driver is the capability the polling loop depends on. Read blocks for
// the duration of one hardware measurement and returns either a complete
// Reading or an error. A *TransientError is an expected timing/checksum
// miss and is retried on the next cycle; any other error is fatal to the
// loop. Release frees the underlying handle and is called exactly once
// during shutdown.
type Driver interface {
	Read() (Reading, error)
	Release() error
	Model() Model
	// MinInterval is the hardware re-read floor. Polling faster than
	// this only produces transient failures, so the station clamps the
	// configured interval to it.
	MinInterval() time.Duration
}

// TransientError wraps an expected, retryable read miss. DHT-class
// sensors fail a nontrivial fraction of reads by design.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient read failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient marks err as an expected, retryable read failure.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// IsTransient reports whether err is an expected read miss that should be
// retried rather than terminating the loop.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}
