package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"periph.io/x/conn/v3/physic"

	"github.com/mklimuk/seesaw"
	"github.com/mklimuk/seesaw/adapter"
	"github.com/mklimuk/seesaw/environment"
	"github.com/mklimuk/seesaw/i2c"
	"github.com/mklimuk/seesaw/snsctx"
)

const (
	adapterMCP2221 = "mcp2221"
	adapterGeneric = "generic"
	adapterNanoPi  = "nanopi"
	adapterMock    = "mock"
)

var errMockAdapter = errors.New("mock adapter has no i2c bus")

// defaultAddr is the STEMMA soil sensor address; bare seesaw boards usually sit at 49.
var defaultAddr = fmt.Sprintf("%x", environment.StemmaSoilDefaultAddress)

// busFlags are shared by every command talking to a chip.
func busFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Value:   adapterMCP2221,
			Usage:   "i2c adapter: mcp2221, generic, nanopi or mock",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Value:   "",
			Usage:   "periph bus name for the generic adapter (e.g. /dev/i2c-1)",
		},
		&cli.IntFlag{
			Name:  "bus",
			Value: -1,
			Usage: "bus number for the nanopi adapter, default bus when negative",
		},
		&cli.IntFlag{
			Name:  "index",
			Value: -1,
			Usage: "mcp2221 adapter index when more than one is connected",
		},
		&cli.IntFlag{
			Name:  "speed",
			Usage: "bus speed in kHz for the generic adapter",
		},
		&cli.StringFlag{
			Name:  "addr",
			Value: defaultAddr,
			Usage: "chip address (hex), defaults to the soil sensor at 36",
		},
	}
}

func commandContext(c *cli.Context) context.Context {
	ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
	return snsctx.SetDevice(ctx, c.String("adapter"))
}

// openBus returns the transport selected by the adapter flag and a function releasing it.
func openBus(c *cli.Context) (seesaw.I2CBus, func() error, error) {
	switch name := c.String("adapter"); name {
	case adapterMCP2221:
		a := adapter.NewMCP2221(adapter.WithDeviceIndex(c.Int("index")))
		return a, func() error { return nil }, nil
	case adapterGeneric:
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, err
		}
		if speed := c.Int("speed"); speed > 0 {
			if err := bus.SetSpeed(physic.Frequency(speed) * physic.KiloHertz); err != nil {
				_ = bus.Close()
				return nil, nil, fmt.Errorf("could not set bus speed: %w", err)
			}
		}
		return bus, bus.Close, nil
	case adapterNanoPi:
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		bus := i2c.NewGobotBus(npi, c.Int("bus"))
		return bus, func() error {
			return errors.Join(bus.Close(), npi.I2cBusAdaptor.Finalize())
		}, nil
	case adapterMock:
		return nil, nil, errMockAdapter
	default:
		return nil, nil, fmt.Errorf("unknown adapter %q", name)
	}
}

func parseByte(s string) (byte, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q: %w", s, err)
	}
	return byte(v), nil
}
