package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/seesaw/adapter"
	"github.com/mklimuk/seesaw/cmd/seesaw/console"
	"github.com/mklimuk/seesaw/snsctx"
)

var mcp2221Cmd = cli.Command{
	Name:  "mcp2221",
	Usage: "MCP2221 USB adapter diagnostics",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "index",
			Value: -1,
			Usage: "adapter index when more than one is connected",
		},
	},
	Subcommands: cli.Commands{
		&mcp2221StatusCmd,
		&mcp2221ReleaseCmd,
		&mcp2221DetectCmd,
	},
}

var mcp2221StatusCmd = cli.Command{
	Name:  "status",
	Usage: "print the adapter i2c engine status",
	Action: func(c *cli.Context) error {
		a := adapter.NewMCP2221(adapter.WithDeviceIndex(c.Int("index")))
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		status, err := a.Status(ctx)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		return encodeYAML(status)
	},
}

var mcp2221ReleaseCmd = cli.Command{
	Name:  "release",
	Usage: "cancel the current transfer and free the i2c engine",
	Action: func(c *cli.Context) error {
		a := adapter.NewMCP2221(adapter.WithDeviceIndex(c.Int("index")))
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		status, err := a.ReleaseBus(ctx)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		return encodeYAML(status)
	},
}

var mcp2221DetectCmd = cli.Command{
	Name:  "detect",
	Usage: "list connected adapters",
	Action: func(c *cli.Context) error {
		devices := adapter.Detect()
		if len(devices) == 0 {
			console.Warn("no MCP2221 adapter connected")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 16, 0, 1, ' ', 0)
		_, _ = fmt.Fprintf(w, "INDEX\tPATH\tSERIAL\tPRODUCT\n")
		for i, dev := range devices {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, dev.Path, dev.Serial, dev.Product)
		}
		return w.Flush()
	},
}

func encodeYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer func() { _ = enc.Close() }()
	err := enc.Encode(v)
	if err != nil {
		return console.Exit(1, "encoding error: %s", console.Red(err))
	}
	return nil
}
