package main

import (
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ddx/envstation/config"
	"github.com/ddx/envstation/station/impl"
)

// configPath is fixed at build time; the station takes no CLI flags and
// reads no environment variables.
const configPath = "config.yaml"

const processLogName = "station.log"

func main() {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		cfg = config.Default()
	}

	logger := newLogger(cfg)
	if err != nil {
		logger.Infof("no config file, using defaults: %s", err.Error())
	}

	st := impl.NewStation()
	if err := st.Init(cfg, logger); err != nil {
		logger.Errorf("cannot init station: %s", err.Error())
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		received := <-sig
		logger.Infof("received %s, shutting down...", received)
		st.Stop()
	}()

	if cfg.HTTP.Enable {
		go func() {
			err := http.ListenAndServe(cfg.HTTP.Listen, st)
			if err != nil {
				logger.Warnf("Cannot start stats server. %v", err.Error())
			}
		}()
	}

	if err := st.Run(); err != nil {
		logger.Errorf("station stopped: %s", err.Error())
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// newLogger mirrors every log line to stdout and to a process log file in
// the data directory.
func newLogger(cfg *config.Config) *logrus.Logger {
	out := io.Writer(os.Stdout)
	if err := os.MkdirAll(cfg.DataDir, 0755); err == nil {
		f, err := os.OpenFile(
			filepath.Join(cfg.DataDir, processLogName),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644,
		)
		if err == nil {
			out = io.MultiWriter(os.Stdout, f)
		}
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	return &logrus.Logger{
		Out:          out,
		Formatter:    &logrus.TextFormatter{},
		Level:        level,
		ReportCaller: true,
	}
}
