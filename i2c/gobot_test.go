package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobotI2C "gobot.io/x/gobot/v2/drivers/i2c"
)

type fakeConnection struct {
	gobotI2C.Connection
	written [][]byte
	resp    []byte
	err     error
	closed  bool
}

func (c *fakeConnection) Write(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.written = append(c.written, append([]byte(nil), b...))
	return len(b), nil
}

func (c *fakeConnection) Read(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	return copy(b, c.resp), nil
}

func (c *fakeConnection) Close() error {
	c.closed = true
	return nil
}

type fakeConnector struct {
	gobotI2C.Connector
	opened map[int]int
	conns  map[int]*fakeConnection
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{opened: map[int]int{}, conns: map[int]*fakeConnection{}}
}

func (f *fakeConnector) GetI2cConnection(address int, busNr int) (gobotI2C.Connection, error) {
	if busNr != 2 {
		return nil, errors.New("no such bus")
	}
	f.opened[address]++
	conn, ok := f.conns[address]
	if !ok {
		conn = &fakeConnection{}
		f.conns[address] = conn
	}
	return conn, nil
}

func (f *fakeConnector) DefaultI2cBus() int {
	return 2
}

func TestGobotBus_WriteRead(t *testing.T) {
	connector := newFakeConnector()
	bus := NewGobotBus(connector, -1)
	ctx := context.Background()

	require.NoError(t, bus.WriteToAddr(ctx, 0x36, []byte{0x0F, 0x10}))
	connector.conns[0x36].resp = []byte{0x01, 0xF4}
	buf := make([]byte, 2)
	require.NoError(t, bus.ReadFromAddr(ctx, 0x36, buf))

	assert.Equal(t, []byte{0x01, 0xF4}, buf)
	assert.Equal(t, [][]byte{{0x0F, 0x10}}, connector.conns[0x36].written)
	assert.Equal(t, 1, connector.opened[0x36], "connection should be reused")
}

func TestGobotBus_ConnectionPerAddress(t *testing.T) {
	connector := newFakeConnector()
	bus := NewGobotBus(connector, 2)
	ctx := context.Background()

	require.NoError(t, bus.WriteToAddr(ctx, 0x36, []byte{0x00}))
	require.NoError(t, bus.WriteToAddr(ctx, 0x37, []byte{0x01}))
	assert.Len(t, connector.conns, 2)

	require.NoError(t, bus.Release(ctx))
	assert.True(t, connector.conns[0x36].closed)
	assert.True(t, connector.conns[0x37].closed)

	require.NoError(t, bus.WriteToAddr(ctx, 0x36, []byte{0x02}))
	assert.Equal(t, 2, connector.opened[0x36])
	require.NoError(t, bus.Close())
}

func TestGobotBus_Errors(t *testing.T) {
	ctx := context.Background()

	bus := NewGobotBus(newFakeConnector(), 5)
	err := bus.WriteToAddr(ctx, 0x36, []byte{0x00})
	assert.ErrorContains(t, err, "no such bus")

	connector := newFakeConnector()
	bus = NewGobotBus(connector, 2)
	require.NoError(t, bus.WriteToAddr(ctx, 0x36, []byte{0x00}))
	busErr := errors.New("remote i/o error")
	connector.conns[0x36].err = busErr
	assert.ErrorIs(t, bus.WriteToAddr(ctx, 0x36, []byte{0x00}), busErr)
	assert.ErrorIs(t, bus.ReadFromAddr(ctx, 0x36, make([]byte, 1)), busErr)

	connector.conns[0x36].err = nil
	connector.conns[0x36].resp = []byte{0x01}
	err = bus.ReadFromAddr(ctx, 0x36, make([]byte, 4))
	assert.ErrorContains(t, err, "short read")
}
