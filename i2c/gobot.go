package i2c

import (
	"context"
	"errors"
	"fmt"
	"sync"

	gobotI2C "gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/seesaw"
)

var _ seesaw.I2CBus = &GobotBus{}

// GobotBus talks to devices through a gobot I2C connector, e.g. the NanoPi NEO
// adaptor. Gobot connections are bound to one address, so one is opened per device
// on first use and kept until Close.
type GobotBus struct {
	mx        sync.Mutex
	connector gobotI2C.Connector
	busNr     int
	conns     map[byte]gobotI2C.Connection
}

// NewGobotBus uses bus number busNr of the connector. A negative busNr selects the
// connector's default bus.
func NewGobotBus(connector gobotI2C.Connector, busNr int) *GobotBus {
	if busNr < 0 {
		busNr = connector.DefaultI2cBus()
	}
	return &GobotBus{
		connector: connector,
		busNr:     busNr,
		conns:     make(map[byte]gobotI2C.Connection),
	}
}

func (b *GobotBus) connection(address byte) (gobotI2C.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not open connection to %x on bus %d: %w", address, b.busNr, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c bus %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from %x: expected %d, got %d", address, len(buffer), n)
	}
	dump(ctx, "read", address, buffer)
	return nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	dump(ctx, "write", address, buffer)
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to %x: expected %d, got %d", address, len(buffer), n)
	}
	return nil
}

// Release closes the cached connections; they are reopened on next use.
func (b *GobotBus) Release(ctx context.Context) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.closeAll()
}

func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.closeAll()
}

func (b *GobotBus) closeAll() error {
	var errs []error
	for addr, conn := range b.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close connection to %x: %w", addr, err))
		}
		delete(b.conns, addr)
	}
	return errors.Join(errs...)
}
