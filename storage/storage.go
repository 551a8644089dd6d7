package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ddx/envstation/config"
	"github.com/ddx/envstation/sensor"
)

type reading struct {
	ID           uint `gorm:"primaryKey"`
	Time         time.Time
	TemperatureC float64
	TemperatureF float64
	Humidity     float64
}

type Storage struct {
	db *gorm.DB
}

func (s *Storage) Init(config *config.Config) error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,
		},
	)
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.Database.Host,
		config.Database.User,
		config.Database.Password,
		config.Database.Database,
		config.Database.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	s.db = db
	err = s.db.AutoMigrate(&reading{})
	if err != nil {
		return err
	}
	return nil
}

func (s *Storage) Name() string { return "database" }

func (s *Storage) Append(r sensor.Reading) error {
	tx := s.db.Create(&reading{
		Time:         r.Time,
		TemperatureC: r.TemperatureC,
		TemperatureF: r.TemperatureF,
		Humidity:     r.Humidity,
	})
	return tx.Error
}

func (s *Storage) Readings(since time.Duration) ([]sensor.Reading, error) {
	var rows []reading
	tx := s.db.Where("time > ?", time.Now().Add(-since)).Order("time").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	readings := make([]sensor.Reading, len(rows))
	for i, row := range rows {
		readings[i] = sensor.Reading{
			Time:         row.Time,
			TemperatureC: row.TemperatureC,
			TemperatureF: row.TemperatureF,
			Humidity:     row.Humidity,
		}
	}
	return readings, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func NewStorage() Adapter {
	return &Storage{}
}
