package seesaw

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// AddressableReader fills buffer with len(buffer) bytes read from the device at address.
type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

// AddressableWriter sends buffer to the device at address in a single write transaction.
type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport every driver in this module talks through. A single bus
// may be shared by several device handles; callers serialize access across them.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}
