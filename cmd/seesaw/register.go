package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/seesaw/bridge"
	"github.com/mklimuk/seesaw/cmd/seesaw/console"
)

var registerCmd = cli.Command{
	Name:    "register",
	Aliases: []string{"reg"},
	Usage:   "raw seesaw register access",
	Subcommands: cli.Commands{
		&registerReadCmd,
		&registerWriteCmd,
	},
}

var registerReadCmd = cli.Command{
	Name:      "read",
	Usage:     "read bytes from a register",
	ArgsUsage: "<base> <reg> [len]",
	Flags: append(busFlags(),
		&cli.DurationFlag{
			Name:  "delay",
			Value: bridge.DefaultReadDelay,
			Usage: "delay between register selection and data read",
		},
	),
	Action: func(c *cli.Context) error {
		base, reg, err := registerArgs(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		length := 1
		if c.NArg() > 2 {
			length, err = strconv.Atoi(c.Args().Get(2))
			if err != nil || length < 1 {
				return console.Exit(1, "invalid length: %s", console.Red(c.Args().Get(2)))
			}
		}
		ctx := commandContext(c)
		dev, release, err := openBridge(ctx, c)
		if err != nil {
			return console.Exit(1, "bridge initialization error: %s", console.Red(err))
		}
		defer func() { _ = release() }()
		data, err := dev.ReadBytes(ctx, base, reg, length, c.Duration("delay"))
		if err != nil {
			return console.Exit(1, "register read error: %s", console.Red(err))
		}
		console.PInfof(console.PictoPin, "%s %s", console.Bold(fmt.Sprintf("%02x:%02x", base, reg)), console.White(hex.EncodeToString(data)))
		return nil
	},
}

var registerWriteCmd = cli.Command{
	Name:      "write",
	Usage:     "write bytes to a register",
	ArgsUsage: "<base> <reg> <hex data>",
	Flags: append(busFlags(),
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "do not ask for confirmation",
		},
	),
	Action: func(c *cli.Context) error {
		base, reg, err := registerArgs(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if c.NArg() < 3 {
			return console.Exit(1, "missing data to write")
		}
		payload, err := hex.DecodeString(c.Args().Get(2))
		if err != nil {
			return console.Exit(1, "invalid data: %s", console.Red(err))
		}
		if !c.Bool("yes") {
			ok, err := console.Confirm(fmt.Sprintf("write %x to register %02x:%02x?", payload, base, reg))
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if !ok {
				console.PInfof(console.PictoStop, "aborted")
				return nil
			}
		}
		ctx := commandContext(c)
		dev, release, err := openBridge(ctx, c)
		if err != nil {
			return console.Exit(1, "bridge initialization error: %s", console.Red(err))
		}
		defer func() { _ = release() }()
		err = dev.WriteBytes(ctx, base, reg, payload)
		if err != nil {
			return console.Exit(1, "register write error: %s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "%d bytes written to %s", len(payload), console.Bold(fmt.Sprintf("%02x:%02x", base, reg)))
		return nil
	},
}

func registerArgs(c *cli.Context) (byte, byte, error) {
	if c.NArg() < 2 {
		return 0, 0, fmt.Errorf("base and register are required")
	}
	base, err := parseByte(c.Args().Get(0))
	if err != nil {
		return 0, 0, fmt.Errorf("base: %w", err)
	}
	reg, err := parseByte(c.Args().Get(1))
	if err != nil {
		return 0, 0, fmt.Errorf("register: %w", err)
	}
	return base, reg, nil
}

func openBridge(ctx context.Context, c *cli.Context) (*bridge.Seesaw, func() error, error) {
	addr, err := parseByte(c.String("addr"))
	if err != nil {
		return nil, nil, err
	}
	bus, release, err := openBus(c)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	dev, err := bridge.New(ctx, bus, addr)
	if err != nil {
		_ = release()
		return nil, nil, err
	}
	console.Debugf("bridge at %#x ready in %s", addr, time.Since(start))
	return dev, release, nil
}
