package console

import (
	"fmt"
	"io"
	"os"
)

const PictoThermometer = "🌡"
const PictoMoisture = "💧"
const PictoPin = "📌"
const PictoCheck = "✅"
const PictoStop = "🚫"

var writer io.Writer = os.Stdout
var errWriter io.Writer = os.Stderr

// Trace enables Debug output.
var Trace bool

func SetOutput(w, errw io.Writer) {
	writer = w
	errWriter = errw
}

func Warn(msg string) {
	_, _ = fmt.Fprintf(errWriter, "%s: %s\n", Yellow("WARN"), msg)
}

func Debugf(msg string, args ...any) {
	if Trace {
		_, _ = fmt.Fprintf(errWriter, "%s %s\n", White("[DEBUG]"), fmt.Sprintf(msg, args...))
	}
}

// PInfof prints a message prefixed with a picto.
func PInfof(picto, msg string, args ...any) {
	_, _ = fmt.Fprintf(writer, "%s %s\n", picto, fmt.Sprintf(msg, args...))
}

func Printf(msg string, args ...any) {
	_, _ = fmt.Fprintf(writer, msg, args...)
}
