package sink

import (
	"fmt"
	"io"

	"github.com/ddx/envstation/sensor"
)

// Console writes one human-readable line per reading. The output is for
// operators, not machines.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Append(r sensor.Reading) error {
	_, err := fmt.Fprintln(c.w, r.String())
	return err
}

func (c *Console) Close() error { return nil }
