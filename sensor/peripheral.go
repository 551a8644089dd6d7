package sensor

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

func peripheralInitialisation(addr uint16, logger *logrus.Logger) (i2c.BusCloser, *bmxx80.Dev, error) {
	// Make sure peripheral is initialized.
	state, err := host.Init()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Prints the loaded driver.
	logger.Debugf("Using drivers:\n")
	for _, driver := range state.Loaded {
		logger.Debugf("- %s\n", driver)
	}

	// Prints the driver that were skipped as irrelevant on the platform.
	logger.Debugf("Drivers skipped:\n")
	for _, failure := range state.Skipped {
		logger.Debugf("- %s: %s\n", failure.D, failure.Err)
	}

	// Having drivers failing to load may not require process termination. It
	// is possible to continue to run in partial failure mode.
	logger.Debugf("Drivers failed to load:\n")
	for _, failure := range state.Failed {
		logger.Debugf("- %s: %v\n", failure.D, failure.Err)
	}

	// Open default I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open i2c bus: %w", err)
	}
	logger.Debugf("I2C bus open call successful. Got: %v", bus.String())

	// Open a handle to a bme280 connected on the I²C bus using Indoor
	// navigation settings: pressure O16x, temperature O2x, humidity O1x,
	// filter F16.
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.Opts{
		Temperature: bmxx80.O2x,
		Pressure:    bmxx80.O16x,
		Humidity:    bmxx80.O1x,
		Filter:      bmxx80.F16,
	})
	if err != nil {
		if closeErr := bus.Close(); closeErr != nil {
			logger.Warnf("error closing i2c bus: %s", closeErr.Error())
		}
		return nil, nil, fmt.Errorf("cannot open bme280 at 0x%x: %w", addr, err)
	}

	return bus, dev, nil
}
