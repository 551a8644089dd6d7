// Package sink contains the append-only recorders a station dispatches
// readings to. Every sink is best-effort per cycle: an Append failure is
// logged by the caller and never stops the polling loop or the other
// sinks.
package sink

import "github.com/ddx/envstation/sensor"

// Sink records readings somewhere durable or visible.
type Sink interface {
	// Name identifies the sink in log lines.
	Name() string
	Append(r sensor.Reading) error
	Close() error
}
