// internal/sensor/thermal/client.go
package thermal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/linkstat/internal/sensor"
)

// registerReader is the slice of the Modbus client the sensor needs.
// goburrow's modbus.Client satisfies it; tests inject fakes.
type registerReader interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// Client reads a temperature sensor over Modbus TCP and presents it
// through the same authoritative-source contract as the wireless API.
// It serializes requests because the underlying handler is not
// goroutine-safe.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  registerReader
	cfg     Config
}

type Config struct {
	Endpoint   string
	UnitID     uint8
	Register   uint16  // input register holding the reading
	Scale      float64 // raw register units per degree; default 10
	SensorName string
	Timeout    time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("thermal: endpoint required")
	}
	if cfg.Scale == 0 {
		cfg.Scale = 10
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
		cfg:     cfg,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// Query implements sensor.API. One input-register read per call.
// The register is a signed 16-bit value in scaled degrees.
func (c *Client) Query() (sensor.Association, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadInputRegisters(c.cfg.Register, 1)
	if err != nil {
		return sensor.Association{}, fmt.Errorf("%w: %v", sensor.ErrUnavailable, err)
	}
	if len(raw) < 2 {
		return sensor.Association{}, errors.New("thermal: short register payload")
	}

	v := int16(uint16(raw[0])<<8 | uint16(raw[1]))
	return sensor.Association{
		Name:           c.cfg.SensorName,
		Signal:         float64(v) / c.cfg.Scale,
		HasSignal:      true,
		PowerOn:        true,
		Classification: "thermal",
	}, nil
}
