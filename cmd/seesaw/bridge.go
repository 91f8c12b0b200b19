package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/seesaw/bridge"
	"github.com/mklimuk/seesaw/cmd/seesaw/console"
)

var bridgeCmd = cli.Command{
	Name:  "bridge",
	Usage: "seesaw chip diagnostics",
	Subcommands: cli.Commands{
		&bridgeProbeCmd,
	},
}

var bridgeProbeCmd = cli.Command{
	Name:  "probe",
	Usage: "reset the chip and verify its hardware id",
	Flags: busFlags(),
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		dev, release, err := openBridge(ctx, c)
		if err != nil {
			return console.Exit(1, "probe failed: %s", console.Red(err))
		}
		defer func() { _ = release() }()
		console.PInfof(console.PictoCheck, "seesaw found at %s (hardware id %s)",
			console.White(fmt.Sprintf("%#x", dev.Address())), console.White(fmt.Sprintf("%#x", bridge.HardwareIDCode)))
		return nil
	},
}
