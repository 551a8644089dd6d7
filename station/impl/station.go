package impl

import (
	"fmt"
	"os"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/ddx/envstation/config"
	"github.com/ddx/envstation/sensor"
	"github.com/ddx/envstation/sink"
	"github.com/ddx/envstation/station"
	"github.com/ddx/envstation/stats"
	"github.com/ddx/envstation/storage"
)

// statsEvery is how many successful readings pass between statistics
// log lines.
const statsEvery = 10

// stationImpl owns the sensor handle, the sinks and the failure counters
// for the lifetime of one run. There is exactly one thread of control in
// the loop; no ambient singletons.
type stationImpl struct {
	cfg    *config.Config
	logger *logrus.Logger
	driver sensor.Driver
	sinks  []sink.Sink
	tg     *tgbotapi.BotAPI

	interval  time.Duration
	threshold int
	csvPath   string

	failures int
	readings int

	stop        chan struct{}
	stopOnce    sync.Once
	cleanupOnce sync.Once
}

// NewStation returns a new instance of a Station daemon.
func NewStation() station.Station {
	return &stationImpl{stop: make(chan struct{})}
}

func (s *stationImpl) Init(cfg *config.Config, logger *logrus.Logger) error {
	s.cfg = cfg
	s.logger = logger

	driver, err := openDriver(cfg, logger)
	if err != nil {
		return err
	}
	s.driver = driver

	s.interval = cfg.Interval()
	if min := driver.MinInterval(); s.interval < min {
		logger.Warnf("interval %s is below the %s re-read floor of %s, using the floor",
			s.interval, driver.Model(), min)
		s.interval = min
	}
	s.threshold = cfg.FailureThreshold
	if s.threshold <= 0 {
		s.threshold = 10
	}

	start := time.Now()
	if cfg.Sinks.Console {
		s.sinks = append(s.sinks, sink.NewConsole(os.Stdout))
	}
	if cfg.Sinks.CSV {
		c, err := sink.NewCSV(cfg.DataDir, driver.Model(), start)
		if err != nil {
			return err
		}
		s.csvPath = c.Path()
		s.sinks = append(s.sinks, c)
		logger.Infof("CSV file created: %s", c.Path())
	}
	if cfg.Sinks.JSON {
		j, err := sink.NewJSON(cfg.DataDir, driver.Model(), start)
		if err != nil {
			return err
		}
		s.sinks = append(s.sinks, j)
	}
	if cfg.Database != nil && cfg.Database.Enable {
		db := storage.NewStorage()
		if err := db.Init(cfg); err != nil {
			return fmt.Errorf("cannot init storage: %w", err)
		}
		s.sinks = append(s.sinks, db)
	}

	if cfg.Telegram.Enable {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Key)
		if err != nil {
			return err
		}
		bot.Debug = cfg.Telegram.Debug
		s.tg = bot
		s.logger.Infof("Telegram authorized on account %s", bot.Self.UserName)
		go s.telegramStart()
	}
	return nil
}

func openDriver(cfg *config.Config, logger *logrus.Logger) (sensor.Driver, error) {
	model := sensor.Model(cfg.Sensor.Model)
	switch model {
	case sensor.DHT11, sensor.DHT22:
		return sensor.NewDHT(cfg.Sensor.Pin, model)
	case sensor.BME280:
		return sensor.NewBME280(cfg.Sensor.I2CAddr, logger)
	case sensor.Simulated:
		return sensor.NewSimulated(time.Now().UnixNano(), 0.1), nil
	default:
		return nil, fmt.Errorf("unknown sensor model %q", cfg.Sensor.Model)
	}
}

// Run is the main daemon loop.
func (s *stationImpl) Run() error {
	defer s.cleanup()
	s.logger.Infof("Environment station starting (%s every %s)...", s.driver.Model(), s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			s.logger.Info("Stopping station")
			return nil
		default:
		}

		r, err := s.driver.Read()
		switch {
		case err == nil:
			s.record(r)
		case sensor.IsTransient(err):
			s.failures++
			s.logger.Debugf("sensor read failed: %s", err.Error())
			if s.failures >= s.threshold {
				s.logger.Warnf("%d consecutive read failures, check the sensor connection", s.failures)
				s.failures = 0
			}
		default:
			s.logger.Errorf("sensor driver failed: %s", err.Error())
			return err
		}

		select {
		case <-s.stop:
			s.logger.Info("Stopping station")
			return nil
		case <-ticker.C:
		}
	}
}

// record timestamps are set by the driver; here the reading is handed to
// every sink independently.
func (s *stationImpl) record(r sensor.Reading) {
	s.failures = 0
	s.readings++
	for _, sk := range s.sinks {
		if err := sk.Append(r); err != nil {
			s.logger.Warnf("cannot write to %s sink: %s", sk.Name(), err.Error())
		}
	}
	if s.csvPath != "" && s.readings%statsEvery == 0 {
		summary, err := stats.FromCSV(s.csvPath)
		if err != nil {
			s.logger.Warnf("cannot compute statistics: %s", err.Error())
			return
		}
		s.logger.Infof("statistics so far: %s", summary)
	}
}

func (s *stationImpl) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// cleanup releases the sensor handle, closes the sinks and reports the
// final run statistics. Guarded so an interrupt racing a fatal error
// still cleans up exactly once.
func (s *stationImpl) cleanup() {
	s.cleanupOnce.Do(func() {
		if err := s.driver.Release(); err != nil {
			s.logger.Warnf("Error during shutdown sensor: %v", err.Error())
		}
		for _, sk := range s.sinks {
			if err := sk.Close(); err != nil {
				s.logger.Warnf("cannot close %s sink: %s", sk.Name(), err.Error())
			}
		}
		if s.csvPath != "" {
			summary, err := stats.FromCSV(s.csvPath)
			if err != nil {
				s.logger.Warnf("cannot compute final statistics: %s", err.Error())
			} else {
				s.logger.Infof("final statistics: %s", summary)
				if s.cfg != nil && s.cfg.Report.Enable {
					s.writeReport()
				}
			}
		}
		s.logger.Info("station cleanup completed")
	})
}
