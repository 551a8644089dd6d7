package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ddx/envstation/sensor"
)

// JSON keeps the run's readings as a single top-level array. Every append
// reads the whole file, adds one object and rewrites the file, so the
// array stays valid JSON at all times. That makes each append O(file
// size); acceptable for the short runs this sink is meant for, and kept
// as documented behavior.
type JSON struct {
	path string
}

// NewJSON prepares the run's JSON file path in dir. The file itself is
// created on the first append.
func NewJSON(dir string, model sensor.Model, start time.Time) (*JSON, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}
	name := fmt.Sprintf("%s_data_%s.json", model, start.Format("20060102_150405"))
	return &JSON{path: filepath.Join(dir, name)}, nil
}

func (j *JSON) Name() string { return "json" }

// Path returns the file this run is writing to.
func (j *JSON) Path() string { return j.path }

func (j *JSON) Append(r sensor.Reading) error {
	var readings []sensor.Reading
	raw, err := os.ReadFile(j.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &readings); err != nil {
			return fmt.Errorf("cannot parse existing json file: %w", err)
		}
	case os.IsNotExist(err):
		// first append, start an empty sequence
	default:
		return err
	}

	readings = append(readings, r)
	out, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, out, 0644)
}

func (j *JSON) Close() error { return nil }
