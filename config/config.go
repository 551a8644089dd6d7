// Package config reads the station configuration from a YAML file. The
// file path is a constant in main; when the file is absent the compiled-in
// defaults apply. There are no CLI flags and no environment variables.
package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v3"
)

type Sensor struct {
	// Model is one of dht11, dht22, bme280, simulated.
	Model string `yaml:"model"`
	// Pin is the GPIO pin carrying the DHT data line, e.g. "GPIO4".
	Pin string `yaml:"pin"`
	// I2CAddr is the BME280 address, 0x76 or 0x77.
	I2CAddr uint16 `yaml:"i2c_addr"`
}

type Sinks struct {
	Console bool `yaml:"console"`
	CSV     bool `yaml:"csv"`
	JSON    bool `yaml:"json"`
}

type Database struct {
	Enable   bool   `yaml:"enable"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Port     string `yaml:"port"`
}

type Telegram struct {
	Key    string `yaml:"key"`
	Debug  bool   `yaml:"debug"`
	Enable bool   `yaml:"enable"`
}

type HTTP struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

type Report struct {
	Enable bool `yaml:"enable"`
}

type Config struct {
	Sensor Sensor `yaml:"sensor"`
	// IntervalSeconds is the pause between read cycles. The station
	// clamps it to the sensor's hardware re-read floor.
	IntervalSeconds  float64   `yaml:"interval_seconds"`
	DataDir          string    `yaml:"data_dir"`
	FailureThreshold int       `yaml:"failure_threshold"`
	Sinks            Sinks     `yaml:"sinks"`
	Database         *Database `yaml:"database"`
	Telegram         Telegram  `yaml:"telegram"`
	HTTP             HTTP      `yaml:"http"`
	Report           Report    `yaml:"report"`
	LogLevel         string    `yaml:"log_level"`
}

// Interval returns the configured pause between cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds * float64(time.Second))
}

// Default returns the compiled-in configuration: a DHT11 on GPIO4 logging
// to console and CSV.
func Default() *Config {
	return &Config{
		Sensor:           Sensor{Model: "dht11", Pin: "GPIO4", I2CAddr: 0x76},
		IntervalSeconds:  2.0,
		DataDir:          "sensor_data",
		FailureThreshold: 10,
		Sinks:            Sinks{Console: true, CSV: true, JSON: false},
		HTTP:             HTTP{Enable: true, Listen: ":8080"},
		LogLevel:         "info",
	}
}

// NewConfig reads f over the defaults.
func NewConfig(f string) (*Config, error) {
	rawConf, err := ioutil.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("cannot open a Config: %w", err)
	}
	conf := Default()
	err = yaml.Unmarshal(rawConf, conf)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshall a Config: %w", err)
	}
	return conf, nil
}
