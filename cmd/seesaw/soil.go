package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/seesaw/cmd/seesaw/console"
	"github.com/mklimuk/seesaw/environment"
)

var soilCmd = cli.Command{
	Name:  "soil",
	Usage: "STEMMA soil sensor",
	Subcommands: cli.Commands{
		&soilReadCmd,
	},
}

var soilReadCmd = cli.Command{
	Name:  "read",
	Usage: "read temperature and moisture",
	Flags: append(busFlags(),
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Value:   1,
			Usage:   "number of readings",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Value: time.Second,
			Usage: "pause between readings",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "text",
			Usage:   "output format: text or yaml",
		},
	),
	Action: func(c *cli.Context) error {
		format := c.String("output")
		if format != "text" && format != "yaml" {
			return console.Exit(1, "unknown output format %s", console.Red(format))
		}
		ctx := commandContext(c)
		sensor, release, err := openSoilSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "sensor initialization error: %s", console.Red(err))
		}
		defer func() { _ = release() }()

		count := c.Int("count")
		readings := make([]environment.Reading, 0, count)
		for i := 0; i < count; i++ {
			if i > 0 {
				time.Sleep(c.Duration("interval"))
			}
			r, err := sensor.GetReading(ctx)
			if err != nil {
				return console.Exit(1, "error getting soil reading: %s", console.Red(err))
			}
			if format == "text" {
				printReading(r)
			}
			readings = append(readings, r)
		}
		if format == "yaml" {
			return encodeYAML(readings)
		}
		return nil
	},
}

func printReading(r environment.Reading) {
	console.Printf("%s  %s\n%s %s\n",
		console.PictoThermometer, console.White(fmt.Sprintf("%.2f°C", r.Temperature)),
		console.PictoMoisture, console.White(r.Moisture))
}

func openSoilSensor(ctx context.Context, c *cli.Context) (environment.SoilSensor, func() error, error) {
	if c.String("adapter") == adapterMock {
		return mockSoilSensor(), func() error { return nil }, nil
	}
	addr, err := parseByte(c.String("addr"))
	if err != nil {
		return nil, nil, err
	}
	bus, release, err := openBus(c)
	if err != nil {
		return nil, nil, err
	}
	s, err := environment.NewStemmaSoil(ctx, bus, environment.WithAddress(addr))
	if err != nil {
		_ = release()
		return nil, nil, err
	}
	return s, release, nil
}

// mockSoilSensor simulates slowly drying soil at room temperature.
func mockSoilSensor() *environment.MockSoilSensor {
	moisture := uint16(900)
	return environment.NewMockSoilSensor(
		func(ctx context.Context) (float32, error) {
			return 21.5 + rand.Float32(), nil
		},
		func(ctx context.Context) (uint16, error) {
			if moisture > 300 {
				moisture -= uint16(rand.IntN(5))
			}
			return moisture, nil
		},
	)
}
