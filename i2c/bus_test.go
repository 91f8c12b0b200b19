package i2c_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/mklimuk/seesaw/bridge"
	"github.com/mklimuk/seesaw/environment"
	"github.com/mklimuk/seesaw/i2c"
	"github.com/mklimuk/seesaw/snsctx"
)

func noSleep(time.Duration) {}

func resetOps(addr uint16) []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: addr, W: []byte{0x00, 0x7F, 0xFF}},
		{Addr: addr, W: []byte{0x00, 0x01}},
		{Addr: addr, R: []byte{0x55}},
	}
}

func TestGenericBus_StemmaSoilWire(t *testing.T) {
	ops := resetOps(0x36)
	ops = append(ops,
		// temperature: reserved bits set, 24.5 C
		i2ctest.IO{Addr: 0x36, W: []byte{0x00, 0x04}},
		i2ctest.IO{Addr: 0x36, R: []byte{0xC0, 0x18, 0x80, 0x00}},
		// moisture: one bad sample then 1016
		i2ctest.IO{Addr: 0x36, W: []byte{0x0F, 0x10}},
		i2ctest.IO{Addr: 0x36, R: []byte{0xFF, 0xFF}},
		i2ctest.IO{Addr: 0x36, W: []byte{0x0F, 0x10}},
		i2ctest.IO{Addr: 0x36, R: []byte{0x03, 0xF8}},
	)
	playback := &i2ctest.Playback{Ops: ops}
	bus := i2c.NewBus(playback)
	ctx := snsctx.SetDevice(snsctx.SetVerbose(context.Background(), true), "stemma-soil")

	sensor, err := environment.NewStemmaSoil(ctx, bus, environment.WithBridgeOptions(bridge.WithSleep(noSleep)))
	require.NoError(t, err)
	reading, err := sensor.GetReading(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 24.5, reading.Temperature, 0.001)
	assert.Equal(t, uint16(1016), reading.Moisture)
	require.NoError(t, bus.Close())
}

func TestGenericBus_RawRegisters(t *testing.T) {
	ops := resetOps(0x49)
	ops = append(ops,
		i2ctest.IO{Addr: 0x49, W: []byte{0x01, 0x02, 0xDE, 0xAD}},
		i2ctest.IO{Addr: 0x49, W: []byte{0x01, 0x04}},
		i2ctest.IO{Addr: 0x49, R: []byte{0x00, 0x00, 0x00, 0x2A}},
	)
	playback := &i2ctest.Playback{Ops: ops}
	bus := i2c.NewBus(playback)
	ctx := context.Background()

	dev, err := bridge.New(ctx, bus, 0x49, bridge.WithSleep(noSleep))
	require.NoError(t, err)
	require.NoError(t, dev.WriteBytes(ctx, 0x01, 0x02, []byte{0xDE, 0xAD}))
	buf, err := dev.ReadBytes(ctx, 0x01, 0x04, 4, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x2A}, buf)
	require.NoError(t, bus.Close())
}
