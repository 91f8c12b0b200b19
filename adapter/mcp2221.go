package adapter

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/mklimuk/seesaw"
	"github.com/mklimuk/seesaw/snsctx"
)

const VendorID = 0x04D8
const ProductID = 0x00DD

const reportSize = 64

// data bytes that fit in one report after the command header
const maxTransfer = reportSize - 4

// HID commands (MCP2221 datasheet, section 3.1)
const (
	cmdStatusSetParams byte = 0x10
	cmdI2CWriteData    byte = 0x90
	cmdI2CReadData     byte = 0x91
	cmdI2CGetData      byte = 0x40
)

const cancelTransfer byte = 0x10

var ErrCommandFailed = errors.New("command failed")
var ErrDeviceNotFound = errors.New("MCP2221 device not found")
var ErrTransferTooLong = fmt.Errorf("transfer exceeds %d bytes", maxTransfer)

var _ seesaw.I2CBus = &MCP2221{}

// MCP2221 is a Microchip MCP2221(A) USB to I2C bridge used as a host-side bus.
// The HID device is opened for every command, so the adapter may be unplugged
// between calls.
type MCP2221 struct {
	mx           sync.Mutex
	index        int
	request      []byte
	response     []byte
	responseWait time.Duration
}

type MCP2221Status struct {
	I2CDataBufferCounter   int    `yaml:"i2c_data_buffer_counter"`
	I2CSpeedDivider        int    `yaml:"i2c_speed_divider"`
	I2CTimeout             int    `yaml:"i2c_timeout"`
	CurrentAddress         string `yaml:"current_address"`
	LastWriteRequestedSize uint16 `yaml:"last_write_requested_size"`
	LastWriteSentSize      uint16 `yaml:"last_write_sent_size"`
	ReadPending            int    `yaml:"read_pending"`
}

type MCP2221Opt func(*MCP2221)

// WithDeviceIndex selects one of several connected adapters, in enumeration order.
func WithDeviceIndex(index int) MCP2221Opt {
	return func(d *MCP2221) {
		d.index = index
	}
}

// WithResponseWait sets the pause between a HID request and reading its response.
func WithResponseWait(wait time.Duration) MCP2221Opt {
	return func(d *MCP2221) {
		d.responseWait = wait
	}
}

func NewMCP2221(opts ...MCP2221Opt) *MCP2221 {
	d := &MCP2221{
		index:        -1,
		request:      make([]byte, reportSize),
		response:     make([]byte, reportSize),
		responseWait: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect lists the MCP2221 adapters currently connected.
func Detect() []hid.DeviceInfo {
	return hid.Enumerate(VendorID, ProductID)
}

func (d *MCP2221) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(buffer) > maxTransfer {
		return fmt.Errorf("write to %x: %w (got %d)", address, ErrTransferTooLong, len(buffer))
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	encodeTransfer(d.request, cmdI2CWriteData, address<<1, len(buffer))
	copy(d.request[4:], buffer)
	err := d.send(ctx)
	if err != nil {
		return fmt.Errorf("write to %x failed: %w", address, err)
	}
	// engine did not accept the transfer
	if d.response[1] == 0x01 {
		slog.Debug("adapter busy", "address", fmt.Sprintf("%#x", address))
		return seesaw.ErrBusBusy
	}
	return nil
}

func (d *MCP2221) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(buffer) > maxTransfer {
		return fmt.Errorf("read from %x: %w (got %d)", address, ErrTransferTooLong, len(buffer))
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	encodeTransfer(d.request, cmdI2CReadData, address<<1|1, len(buffer))
	err := d.send(ctx)
	if err != nil {
		return fmt.Errorf("bus read from %x failed: %w", address, err)
	}
	if d.response[1] == 0x01 {
		return seesaw.ErrBusBusy
	}
	d.resetBuffers()
	d.request[0] = cmdI2CGetData
	err = d.send(ctx)
	if err != nil {
		return fmt.Errorf("error getting read data from adapter: %w", err)
	}
	return decodeReadData(d.response, buffer)
}

func encodeTransfer(request []byte, cmd byte, address byte, length int) {
	request[0] = cmd
	binary.LittleEndian.PutUint16(request[1:3], uint16(length))
	request[3] = address
}

func decodeReadData(response []byte, buffer []byte) error {
	if response[1] == 0x41 {
		return fmt.Errorf("%w: error reading the I2C slave data from the I2C engine", ErrCommandFailed)
	}
	if response[3] == 127 || int(response[3]) != len(buffer) {
		return fmt.Errorf("invalid data size byte; expected %d, got %d", len(buffer), response[3])
	}
	copy(buffer, response[4:])
	return nil
}

func (d *MCP2221) Status(ctx context.Context) (*MCP2221Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParams
	err := d.send(ctx)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

func bufferToStatus(buffer []byte) *MCP2221Status {
	/*
		9-10:  requested I2C transfer length (LE)
		11-12: already transferred number of bytes (LE)
		13:    internal I2C data buffer counter
		14:    current I2C communication speed divider
		15:    current I2C timeout
		16-17: I2C address being used
		25:    I2C read pending
	*/
	return &MCP2221Status{
		I2CDataBufferCounter:   int(buffer[13]),
		I2CSpeedDivider:        int(buffer[14]),
		I2CTimeout:             int(buffer[15]),
		CurrentAddress:         hex.EncodeToString(buffer[16:18]),
		LastWriteRequestedSize: binary.LittleEndian.Uint16(buffer[9:11]),
		LastWriteSentSize:      binary.LittleEndian.Uint16(buffer[11:13]),
		ReadPending:            int(buffer[25]),
	}
}

// Release cancels the current I2C transfer and frees the adapter's I2C engine.
func (d *MCP2221) Release(ctx context.Context) error {
	_, err := d.ReleaseBus(ctx)
	return err
}

func (d *MCP2221) ReleaseBus(ctx context.Context) (*MCP2221Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatusSetParams
	d.request[2] = cancelTransfer
	err := d.send(ctx)
	if err != nil {
		return nil, fmt.Errorf("release request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

func (d *MCP2221) open() (*hid.Device, error) {
	devs := Detect()
	if len(devs) == 0 {
		return nil, ErrDeviceNotFound
	}
	if d.index < 0 {
		if len(devs) > 1 {
			return nil, fmt.Errorf("ambiguous device identification: %d adapters connected", len(devs))
		}
		return devs[0].Open()
	}
	if d.index >= len(devs) {
		return nil, fmt.Errorf("no device with index %d", d.index)
	}
	return devs[d.index].Open()
}

func (d *MCP2221) send(ctx context.Context) error {
	dev, err := d.open()
	if err != nil {
		return fmt.Errorf("error opening device: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			slog.Warn("could not close adapter", "error", err)
		}
	}()
	verbose := snsctx.IsVerbose(ctx)
	if verbose {
		slog.Debug("sending message to adapter", "device", snsctx.Device(ctx), "request", hex.EncodeToString(d.request[:8]))
	}
	n, err := dev.Write(d.request)
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != reportSize {
		return fmt.Errorf("short write: %d", n)
	}
	time.Sleep(d.responseWait)
	n, err = dev.Read(d.response)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != reportSize {
		return fmt.Errorf("short read: %d", n)
	}
	if verbose {
		slog.Debug("read message from adapter", "device", snsctx.Device(ctx), "response", hex.EncodeToString(d.response[:8]))
	}
	return nil
}

func (d *MCP2221) resetBuffers() {
	clear(d.request)
	clear(d.response)
}
