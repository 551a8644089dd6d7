package sensor

import (
	"fmt"
	"time"

	dht "github.com/MichaelS11/go-dht"
)

// dhtDriver adapts a DHT11/DHT22 on a GPIO pin. The one-wire protocol
// decoding lives in the go-dht library; every read error it reports is a
// timing or checksum miss, so all of them are classified transient.
type dhtDriver struct {
	dev   *dht.DHT
	model Model
	pin   string
}

// NewDHT opens a DHT11 or DHT22 connected to the named GPIO pin
// (e.g. "GPIO4").
func NewDHT(pin string, model Model) (Driver, error) {
	if err := dht.HostInit(); err != nil {
		return nil, fmt.Errorf("cannot init gpio host: %w", err)
	}
	sensorType := ""
	if model == DHT11 {
		sensorType = "dht11"
	}
	dev, err := dht.NewDHT(pin, dht.Celsius, sensorType)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s on pin %s: %w", model, pin, err)
	}
	return &dhtDriver{dev: dev, model: model, pin: pin}, nil
}

func (d *dhtDriver) Read() (Reading, error) {
	humidity, temperature, err := d.dev.Read()
	if err != nil {
		return Reading{}, Transient(err)
	}
	return NewReading(time.Now(), temperature, humidity), nil
}

func (d *dhtDriver) Release() error {
	// go-dht holds no handle beyond the pin; nothing to free.
	return nil
}

func (d *dhtDriver) Model() Model { return d.model }

func (d *dhtDriver) MinInterval() time.Duration {
	// Datasheet re-read floors: 2s for DHT11, 3s for DHT22.
	if d.model == DHT22 {
		return 3 * time.Second
	}
	return 2 * time.Second
}
