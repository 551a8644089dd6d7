package storage

import (
	"time"

	"github.com/ddx/envstation/config"
	"github.com/ddx/envstation/sensor"
	"github.com/ddx/envstation/sink"
)

// Adapter persists readings in a database. It doubles as one more
// best-effort sink for the polling loop.
type Adapter interface {
	sink.Sink
	Init(config *config.Config) error
	Readings(since time.Duration) ([]sensor.Reading, error)
}
