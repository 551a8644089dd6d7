package sensor

import (
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
)

// bme280Driver adapts a BME280 on the default I2C bus.
type bme280Driver struct {
	bus    i2c.BusCloser
	dev    *bmxx80.Dev
	logger *logrus.Logger
}

// NewBME280 opens a BME280 at the given I2C address (0x76 or 0x77).
func NewBME280(addr uint16, logger *logrus.Logger) (Driver, error) {
	bus, dev, err := peripheralInitialisation(addr, logger)
	if err != nil {
		return nil, err
	}
	return &bme280Driver{bus: bus, dev: dev, logger: logger}, nil
}

func (d *bme280Driver) Read() (Reading, error) {
	var env physic.Env
	if err := d.dev.Sense(&env); err != nil {
		// Sense errors are bus glitches; the handle stays valid.
		return Reading{}, Transient(err)
	}
	return NewReading(
		time.Now(),
		env.Temperature.Celsius(),
		float64(env.Humidity)/float64(physic.PercentRH),
	), nil
}

func (d *bme280Driver) Release() error {
	err := d.dev.Halt()
	if closeErr := d.bus.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (d *bme280Driver) Model() Model { return BME280 }

func (d *bme280Driver) MinInterval() time.Duration { return 2 * time.Second }
