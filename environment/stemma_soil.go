package environment

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mklimuk/seesaw"
	"github.com/mklimuk/seesaw/bridge"
)

const StemmaSoilDefaultAddress = 0x36

const touchChannelOffset byte = 0x10

// the capacitive front-end produces 12-bit values; anything above is a bad sample
const maxMoisture = 4095

// first read plus three retries
const moistureAttempts = 4

// temperature register is 16.16 fixed point
const tempScale = 0.00001525878

var ErrSensorReadFailure = errors.New("stemma soil: could not get a valid moisture reading")

// Reading is a single temperature + moisture sample.
type Reading struct {
	Temperature float32 `yaml:"temperature"`
	Moisture    uint16  `yaml:"moisture"`
}

type SoilSensor interface {
	GetTemperature(ctx context.Context) (float32, error)
	GetMoisture(ctx context.Context) (uint16, error)
	GetReading(ctx context.Context) (Reading, error)
}

var _ SoilSensor = &StemmaSoil{}

type StemmaSoilOpts struct {
	Address    byte
	ReadDelay  time.Duration
	RetryDelay time.Duration
	BridgeOpts []bridge.Opt
}

type StemmaSoilOpt func(*StemmaSoilOpts)

func WithAddress(address byte) StemmaSoilOpt {
	return func(o *StemmaSoilOpts) {
		o.Address = address
	}
}

// WithReadDelay sets the register preparation delay for temperature and moisture reads.
func WithReadDelay(delay time.Duration) StemmaSoilOpt {
	return func(o *StemmaSoilOpts) {
		o.ReadDelay = delay
	}
}

// WithRetryDelay sets the pause after every moisture sample.
func WithRetryDelay(delay time.Duration) StemmaSoilOpt {
	return func(o *StemmaSoilOpts) {
		o.RetryDelay = delay
	}
}

// WithBridgeOptions passes options through to the underlying seesaw handle.
func WithBridgeOptions(opts ...bridge.Opt) StemmaSoilOpt {
	return func(o *StemmaSoilOpts) {
		o.BridgeOpts = append(o.BridgeOpts, opts...)
	}
}

// StemmaSoil represents Adafruit STEMMA Soil Sensor, a capacitive moisture sensor
// running on a seesaw chip. Raw register access stays available through the
// embedded bridge.
// See: https://learn.adafruit.com/adafruit-stemma-soil-sensor-i2c-capacitive-moisture-sensor
//
// Usage:
//
//	s, err := NewStemmaSoil(ctx, bus)
//	m, err := s.GetMoisture(ctx)
type StemmaSoil struct {
	*bridge.Seesaw
	config StemmaSoilOpts
}

// NewStemmaSoil resets the sensor and verifies its hardware id before returning.
func NewStemmaSoil(ctx context.Context, transport seesaw.I2CBus, opts ...StemmaSoilOpt) (*StemmaSoil, error) {
	config := StemmaSoilOpts{
		Address:    StemmaSoilDefaultAddress,
		ReadDelay:  5 * time.Millisecond,
		RetryDelay: time.Millisecond,
	}
	for _, opt := range opts {
		opt(&config)
	}
	dev, err := bridge.New(ctx, transport, config.Address, config.BridgeOpts...)
	if err != nil {
		return nil, fmt.Errorf("stemma soil: %w", err)
	}
	return &StemmaSoil{Seesaw: dev, config: config}, nil
}

// GetTemperature returns the chip die temperature in Celsius.
func (s *StemmaSoil) GetTemperature(ctx context.Context) (float32, error) {
	buf, err := s.ReadBytes(ctx, bridge.StatusBase, bridge.StatusTemp, 4, s.config.ReadDelay)
	if err != nil {
		return 0, fmt.Errorf("stemma soil: could not read temperature: %w", err)
	}
	return convertTemperature(buf), nil
}

// GetMoisture returns the capacitive reading of the touch channel (0-4095).
// Out of range samples are re-read up to three times before ErrSensorReadFailure.
// Transport errors are returned immediately.
func (s *StemmaSoil) GetMoisture(ctx context.Context) (uint16, error) {
	for attempt := 1; attempt <= moistureAttempts; attempt++ {
		buf, err := s.ReadBytes(ctx, bridge.TouchBase, touchChannelOffset, 2, s.config.ReadDelay)
		if err != nil {
			return 0, fmt.Errorf("stemma soil: could not read moisture: %w", err)
		}
		s.Delay(s.config.RetryDelay)
		val := binary.BigEndian.Uint16(buf)
		if val <= maxMoisture {
			return val, nil
		}
		slog.Debug("bad moisture reading", "value", val, "attempt", attempt)
	}
	return 0, ErrSensorReadFailure
}

func (s *StemmaSoil) GetReading(ctx context.Context) (Reading, error) {
	temp, err := s.GetTemperature(ctx)
	if err != nil {
		return Reading{}, err
	}
	moisture, err := s.GetMoisture(ctx)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Temperature: temp, Moisture: moisture}, nil
}

func rawTemperature(resp []byte) uint32 {
	// top two bits of the first byte are not part of the value
	return binary.BigEndian.Uint32([]byte{resp[0] & 0x3F, resp[1], resp[2], resp[3]})
}

func convertTemperature(resp []byte) float32 {
	return float32(tempScale * float64(rawTemperature(resp)))
}
