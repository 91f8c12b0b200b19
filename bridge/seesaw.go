// Package bridge implements the register protocol of the Adafruit seesaw, a small
// firmware-driven microcontroller that exposes its peripherals over I2C as a virtual
// register space addressed by a (base, offset) byte pair.
//
// Reads are two-phase: the host writes the register address, waits for the chip
// firmware to prepare the answer, then issues a separate read transaction.
//
// Typical usage:
//
//	dev, err := bridge.New(ctx, bus, 0x49)
//	if err != nil { ... } // chip missing or not a seesaw
//	b, err := dev.Read8(ctx, bridge.StatusBase, bridge.StatusHWID)
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mklimuk/seesaw"
)

// Register groups
const (
	StatusBase byte = 0x00
	TouchBase  byte = 0x0F
)

// Status group sub-registers
const (
	StatusHWID    byte = 0x01
	StatusTemp    byte = 0x04
	StatusSWReset byte = 0x7F
)

// HardwareIDCode is what StatusHWID returns on a genuine seesaw.
const HardwareIDCode byte = 0x55

const swResetValue byte = 0xFF

const (
	DefaultResetDelay = 500 * time.Millisecond
	DefaultReadDelay  = 5 * time.Millisecond
)

var ErrHardwareMismatch = errors.New("seesaw: hardware id mismatch")
var ErrInvalidLength = errors.New("seesaw: invalid read length")

// HardwareMismatchError is returned by Reset when the chip answers with an unexpected
// hardware id. It usually means wrong wiring or a different device at the address.
type HardwareMismatchError struct {
	Observed byte
	Expected byte
}

func (e *HardwareMismatchError) Error() string {
	return fmt.Sprintf("seesaw: hardware id returned (%#x) is not correct, expected %#x; check your wiring", e.Observed, e.Expected)
}

func (e *HardwareMismatchError) Is(target error) bool {
	return target == ErrHardwareMismatch
}

type Opts struct {
	ResetDelay time.Duration
	ReadDelay  time.Duration
	Sleep      func(time.Duration)
}

type Opt func(*Opts)

// WithResetDelay sets how long Reset waits for the firmware to reboot.
func WithResetDelay(delay time.Duration) Opt {
	return func(o *Opts) {
		o.ResetDelay = delay
	}
}

// WithReadDelay sets the address-to-data delay used by Read8.
func WithReadDelay(delay time.Duration) Opt {
	return func(o *Opts) {
		o.ReadDelay = delay
	}
}

// WithSleep replaces time.Sleep for every protocol delay.
func WithSleep(sleep func(time.Duration)) Opt {
	return func(o *Opts) {
		o.Sleep = sleep
	}
}

// Seesaw is a handle to a single seesaw chip. It is not safe for concurrent use:
// a register read is a write/delay/read sequence that must not interleave with
// other traffic to the same address.
type Seesaw struct {
	config    Opts
	transport seesaw.I2CBus
	address   byte
}

// New creates a handle for the chip at address and resets it. A nil error means the
// chip responded with the expected hardware id.
func New(ctx context.Context, transport seesaw.I2CBus, address byte, opts ...Opt) (*Seesaw, error) {
	config := Opts{
		ResetDelay: DefaultResetDelay,
		ReadDelay:  DefaultReadDelay,
		Sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(&config)
	}
	s := &Seesaw{
		config:    config,
		transport: transport,
		address:   address,
	}
	if err := s.Reset(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Seesaw) Address() byte {
	return s.address
}

// Reset triggers a software reset, waits for the firmware to come back and verifies
// the hardware id. A mismatch is reported as *HardwareMismatchError and is not retried.
func (s *Seesaw) Reset(ctx context.Context) error {
	err := s.Write8(ctx, StatusBase, StatusSWReset, swResetValue)
	if err != nil {
		return fmt.Errorf("seesaw: software reset failed: %w", err)
	}
	s.Delay(s.config.ResetDelay)
	id, err := s.Read8(ctx, StatusBase, StatusHWID)
	if err != nil {
		return fmt.Errorf("seesaw: could not read hardware id: %w", err)
	}
	if id != HardwareIDCode {
		return &HardwareMismatchError{Observed: id, Expected: HardwareIDCode}
	}
	slog.Debug("seesaw reset", "address", fmt.Sprintf("%#x", s.address), "hwid", fmt.Sprintf("%#x", id))
	return nil
}

func (s *Seesaw) Write8(ctx context.Context, base, reg, value byte) error {
	return s.WriteBytes(ctx, base, reg, []byte{value})
}

// WriteBytes sends the register address followed by payload in one transaction.
func (s *Seesaw) WriteBytes(ctx context.Context, base, reg byte, payload []byte) error {
	buf := make([]byte, 0, 2+len(payload))
	buf = append(buf, base, reg)
	buf = append(buf, payload...)
	err := s.transport.WriteToAddr(ctx, s.address, buf)
	if err != nil {
		return fmt.Errorf("seesaw: write to register %#x:%#x failed: %w", base, reg, err)
	}
	return nil
}

func (s *Seesaw) Read8(ctx context.Context, base, reg byte) (byte, error) {
	buf, err := s.ReadBytes(ctx, base, reg, 1, s.config.ReadDelay)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadBytes selects the register, waits delay for the firmware to prepare the data and
// reads length bytes. Registers differ in preparation time, hence the per-call delay.
func (s *Seesaw) ReadBytes(ctx context.Context, base, reg byte, length int, delay time.Duration) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	err := s.transport.WriteToAddr(ctx, s.address, []byte{base, reg})
	if err != nil {
		return nil, fmt.Errorf("seesaw: could not select register %#x:%#x: %w", base, reg, err)
	}
	s.Delay(delay)
	buf := make([]byte, length)
	err = s.transport.ReadFromAddr(ctx, s.address, buf)
	if err != nil {
		return nil, fmt.Errorf("seesaw: could not read register %#x:%#x: %w", base, reg, err)
	}
	return buf, nil
}

// Delay blocks for d using the sleep function the handle was configured with.
func (s *Seesaw) Delay(d time.Duration) {
	s.config.Sleep(d)
}
