// Package diag implements structured protocol diagnostics: a zerolog
// logger plus a per-connection google/uuid correlation id, wired to
// wlclient.Display.SetTracer so every encoded request and decoded event
// can be emitted as a structured log line.
package diag

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wlvirt/virtual-input/internal/wire"
	"github.com/wlvirt/virtual-input/wlclient"
)

// Logger wraps a zerolog.Logger scoped to one connection via a generated
// correlation id.
type Logger struct {
	log           zerolog.Logger
	correlationID uuid.UUID
}

// New builds a Logger writing to os.Stdout, tagged with a fresh
// correlation id.
func New() *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	id := uuid.New()
	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("connection", id.String()).
		Logger()
	return &Logger{log: log, correlationID: id}
}

// Enabled reports whether WLVIRT_LOG=1 is set in the environment.
func Enabled() bool {
	return os.Getenv("WLVIRT_LOG") == "1"
}

// CorrelationID returns the connection-scoped id this logger tags every
// line with.
func (l *Logger) CorrelationID() uuid.UUID { return l.correlationID }

// Attach installs l as d's wlclient.Tracer, logging one debug line per
// encoded request and decoded event.
func (l *Logger) Attach(d *wlclient.Display) {
	d.SetTracer(func(direction string, objectID uint32, methodID uint16, ifaceName, methodName string, args []wire.Arg) {
		evt := l.log.Debug().
			Str("dir", direction).
			Uint32("object_id", objectID).
			Uint16("method_id", methodID).
			Str("interface", ifaceName).
			Str("method", methodName)
		for i, a := range args {
			evt = evt.Str(fmt.Sprintf("arg%d", i), formatArg(a))
		}
		evt.Msg("wire")
	})
}

// LogError clears d's last error through PrintLastError, which writes the
// message to stderr, and then logs the error's code (not its message) at
// error level. It does nothing when no error is set.
func (l *Logger) LogError(d *wlclient.Display) {
	code := d.LastErrorCode()
	if code == wire.CodeNone {
		return
	}
	d.PrintLastError()
	l.log.Error().Str("code", code.String()).Msg("protocol error")
}

func formatArg(a wire.Arg) string {
	switch a.Kind {
	case 'i':
		return fmt.Sprintf("%d", a.Int)
	case 'u', 'o', 'n':
		return fmt.Sprintf("%d", a.UInt)
	case 'f':
		return fmt.Sprintf("%g", a.FixedVal.Float64())
	case 's':
		return a.Str
	case 'h':
		return "fd"
	default:
		return "?"
	}
}
