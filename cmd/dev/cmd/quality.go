package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"

	"github.com/mklimuk/seesaw/adapter"
)

func TestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := test.Test()
			if err != nil {
				return fmt.Errorf("failed to run tests: %w", err)
			}
			return nil
		},
	}
	return cmd
}

func LintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run linting",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := test.Lint()
			if err != nil {
				return fmt.Errorf("failed to run linting: %w", err)
			}
			return nil
		},
	}
	return cmd
}

// IntegrationTestCmd runs the whole suite with TEST_INTEGRATION_ENABLED set, which
// unlocks the hardware tests. Adapter selection is forwarded through the environment.
func IntegrationTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integration-test",
		Short: "Run hardware-in-the-loop tests",
		Long: `Runs the test suite against a soil sensor attached to an MCP2221 adapter.

Environment passed to the tests:
  SEESAW_MCP2221_INDEX  adapter index (--index) when more than one is connected
  SEESAW_SOIL_ADDR      sensor address in hex (--addr)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := cmd.Flags().GetInt("index")
			if err != nil {
				return fmt.Errorf("could not get index flag: %w", err)
			}
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return fmt.Errorf("could not get addr flag: %w", err)
			}
			devices := adapter.Detect()
			if len(devices) == 0 {
				slog.Warn("no MCP2221 adapter connected, hardware tests will be skipped")
			}
			for i, dev := range devices {
				slog.Info("adapter found", "index", i, "path", dev.Path, "serial", dev.Serial)
			}
			if index >= 0 {
				if index >= len(devices) {
					return fmt.Errorf("no adapter with index %d (%d connected)", index, len(devices))
				}
				err = os.Setenv("SEESAW_MCP2221_INDEX", strconv.Itoa(index))
				if err != nil {
					return fmt.Errorf("could not set adapter index: %w", err)
				}
			}
			if addr != "" {
				if _, err := strconv.ParseUint(addr, 16, 8); err != nil {
					return fmt.Errorf("invalid sensor address %q: %w", addr, err)
				}
				err = os.Setenv("SEESAW_SOIL_ADDR", addr)
				if err != nil {
					return fmt.Errorf("could not set sensor address: %w", err)
				}
			}
			err = test.Integ()
			if err != nil {
				return fmt.Errorf("failed to run integration testing: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Int("index", -1, "MCP2221 adapter index")
	cmd.Flags().String("addr", "", "soil sensor address (hex), defaults to 36")
	return cmd
}
