package console

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Exit makes the cli exit with code and a formatted message.
func Exit(code int, msg string, args ...any) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf(msg, args...), code)
}
