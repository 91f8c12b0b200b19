package i2c

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/mklimuk/seesaw/snsctx"
)

func dump(ctx context.Context, op string, address byte, buffer []byte) {
	if !snsctx.IsVerbose(ctx) {
		return
	}
	slog.Debug("i2c "+op,
		"device", snsctx.Device(ctx),
		"address", fmt.Sprintf("%#x", address),
		"data", hex.EncodeToString(buffer),
	)
}
