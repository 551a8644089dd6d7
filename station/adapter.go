package station

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ddx/envstation/config"
)

// Station drives the fixed-cadence read/record cycle until stopped. It
// also serves a chart of the current run over HTTP.
type Station interface {
	ServeHTTP(w http.ResponseWriter, _ *http.Request)
	// Init opens the sensor driver and the configured sinks.
	Init(config *config.Config, logger *logrus.Logger) error
	// Run blocks until Stop is called (returns nil) or the driver
	// fails fatally (returns the error). Cleanup runs exactly once
	// before Run returns.
	Run() error
	// Stop requests a graceful shutdown. The in-flight read or sleep
	// finishes first; the stop is observed at the next check.
	Stop()
}
