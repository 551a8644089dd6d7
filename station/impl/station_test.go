package impl

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddx/envstation/sensor"
	"github.com/ddx/envstation/sink"
)

// fakeDriver replays a scripted error sequence. A nil entry is a
// successful read; after the script runs out every read succeeds.
type fakeDriver struct {
	mu       sync.Mutex
	script   []error
	reads    int
	releases int
	onRead   func(n int)
}

func (d *fakeDriver) Read() (sensor.Reading, error) {
	d.mu.Lock()
	n := d.reads
	d.reads++
	var err error
	if n < len(d.script) {
		err = d.script[n]
	}
	onRead := d.onRead
	d.mu.Unlock()

	if onRead != nil {
		onRead(n + 1)
	}
	if err != nil {
		return sensor.Reading{}, err
	}
	return sensor.NewReading(time.Now(), 21.0, 45.0), nil
}

func (d *fakeDriver) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releases++
	return nil
}

func (d *fakeDriver) Model() sensor.Model { return "fake" }

func (d *fakeDriver) MinInterval() time.Duration { return 0 }

func (d *fakeDriver) released() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.releases
}

type fakeSink struct {
	name string
	fail bool

	mu       sync.Mutex
	appended []sensor.Reading
	closed   int
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Append(r sensor.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("disk full")
	}
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func newTestStation(d sensor.Driver, sinks []sink.Sink, logger *logrus.Logger, threshold int) *stationImpl {
	return &stationImpl{
		logger:    logger,
		driver:    d,
		sinks:     sinks,
		interval:  time.Millisecond,
		threshold: threshold,
		stop:      make(chan struct{}),
	}
}

func transientScript(n int) []error {
	script := make([]error, n)
	for i := range script {
		script[i] = sensor.Transient(errors.New("checksum mismatch"))
	}
	return script
}

func warningCount(hook *logrustest.Hook) int {
	count := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "consecutive read failures") {
			count++
		}
	}
	return count
}

func TestTransientFailuresNeverStopLoop(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	st := newTestStation(nil, nil, logger, 10)

	d := &fakeDriver{script: transientScript(25)}
	d.onRead = func(n int) {
		if n == 25 {
			st.Stop()
		}
	}
	st.driver = d

	require.NoError(t, st.Run())
	assert.Equal(t, 1, d.released())
}

func TestThresholdWarningEmittedOnce(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	st := newTestStation(nil, nil, logger, 10)

	// 15 consecutive misses: the counter hits the threshold once at 10,
	// resets, and the 5 that follow stay below it.
	d := &fakeDriver{script: transientScript(15)}
	d.onRead = func(n int) {
		if n == 15 {
			st.Stop()
		}
	}
	st.driver = d

	require.NoError(t, st.Run())
	assert.Equal(t, 1, warningCount(hook))
}

func TestFatalDriverErrorStopsLoop(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	fatal := errors.New("device handle invalid")
	d := &fakeDriver{script: []error{
		sensor.Transient(errors.New("checksum mismatch")),
		fatal,
	}}
	st := newTestStation(d, nil, logger, 10)

	err := st.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fatal))
	assert.Equal(t, 1, d.released())
}

func TestReadingsDispatchedToAllSinks(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	good := &fakeSink{name: "good"}
	bad := &fakeSink{name: "bad", fail: true}
	st := newTestStation(nil, []sink.Sink{bad, good}, logger, 10)

	d := &fakeDriver{}
	d.onRead = func(n int) {
		if n == 3 {
			st.Stop()
		}
	}
	st.driver = d

	// a failing sink never aborts the loop or the other sinks
	require.NoError(t, st.Run())
	assert.Len(t, good.appended, 3)
	assert.Equal(t, 1, good.closed)
	assert.Equal(t, 1, bad.closed)

	sinkWarnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "bad sink") {
			sinkWarnings++
		}
	}
	assert.Equal(t, 3, sinkWarnings)
}

func TestFailureCounterResetsOnSuccess(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	st := newTestStation(nil, nil, logger, 10)

	// 9 misses, a success, 9 more misses: the threshold is never hit.
	script := transientScript(9)
	script = append(script, nil)
	script = append(script, transientScript(9)...)
	d := &fakeDriver{script: script}
	d.onRead = func(n int) {
		if n == 19 {
			st.Stop()
		}
	}
	st.driver = d

	require.NoError(t, st.Run())
	assert.Equal(t, 0, warningCount(hook))
}

func TestCleanupRunsExactlyOnce(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	d := &fakeDriver{}
	s := &fakeSink{name: "good"}
	st := newTestStation(d, []sink.Sink{s}, logger, 10)

	st.Stop()
	st.Stop() // second stop is a no-op
	require.NoError(t, st.Run())
	st.cleanup() // direct second call must not repeat the work

	assert.Equal(t, 1, d.released())
	assert.Equal(t, 1, s.closed)

	done := 0
	for _, e := range hook.AllEntries() {
		if strings.Contains(e.Message, "cleanup completed") {
			done++
		}
	}
	assert.Equal(t, 1, done)
}

func TestStatisticsLoggedDuringRun(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	csv, err := sink.NewCSV(t.TempDir(), "fake", time.Now())
	require.NoError(t, err)

	st := newTestStation(nil, []sink.Sink{csv}, logger, 10)
	st.csvPath = csv.Path()

	d := &fakeDriver{}
	d.onRead = func(n int) {
		if n == statsEvery {
			st.Stop()
		}
	}
	st.driver = d

	require.NoError(t, st.Run())

	periodic, final := 0, 0
	for _, e := range hook.AllEntries() {
		if strings.Contains(e.Message, "statistics so far") {
			periodic++
		}
		if strings.Contains(e.Message, "final statistics") {
			final++
		}
	}
	assert.Equal(t, 1, periodic)
	assert.Equal(t, 1, final)
}
