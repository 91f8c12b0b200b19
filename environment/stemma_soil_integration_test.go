package environment_test

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/seesaw/adapter"
	"github.com/mklimuk/seesaw/environment"
)

// Requires an MCP2221 adapter with a STEMMA soil sensor attached. SEESAW_MCP2221_INDEX
// and SEESAW_SOIL_ADDR (hex) select the adapter and sensor address; `dev integration-test`
// sets them from its flags.
func TestStemmaSoilHardware(t *testing.T) {
	if os.Getenv("TEST_INTEGRATION_ENABLED") == "" {
		t.Skip("integration tests disabled")
	}
	if len(adapter.Detect()) == 0 {
		t.Skip("no MCP2221 adapter connected")
	}
	var busOpts []adapter.MCP2221Opt
	if v := os.Getenv("SEESAW_MCP2221_INDEX"); v != "" {
		index, err := strconv.Atoi(v)
		require.NoError(t, err)
		busOpts = append(busOpts, adapter.WithDeviceIndex(index))
	}
	var opts []environment.StemmaSoilOpt
	if v := os.Getenv("SEESAW_SOIL_ADDR"); v != "" {
		addr, err := strconv.ParseUint(v, 16, 8)
		require.NoError(t, err)
		opts = append(opts, environment.WithAddress(byte(addr)))
	}

	ctx := context.Background()
	bus := adapter.NewMCP2221(busOpts...)
	t.Cleanup(func() { _ = bus.Release(ctx) })

	s, err := environment.NewStemmaSoil(ctx, bus, opts...)
	require.NoError(t, err)

	r, err := s.GetReading(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25, r.Temperature, 20)
	assert.LessOrEqual(t, r.Moisture, uint16(4095))
}
