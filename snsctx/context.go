// Package snsctx carries per-call diagnostics flags down to the bus transports.
package snsctx

import "context"

type ctxIndex int

const (
	ctxIndexVerbose ctxIndex = iota
	ctxIndexDevice
)

func IsVerbose(ctx context.Context) bool {
	val, ok := ctx.Value(ctxIndexVerbose).(bool)
	return ok && val
}

// SetVerbose enables hex dumps of every bus transaction made with ctx.
func SetVerbose(ctx context.Context, value bool) context.Context {
	return context.WithValue(ctx, ctxIndexVerbose, value)
}

// Device returns the device label attached to ctx, if any.
func Device(ctx context.Context) string {
	val, _ := ctx.Value(ctxIndexDevice).(string)
	return val
}

// SetDevice labels transport log records produced with ctx.
func SetDevice(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxIndexDevice, name)
}
