// Package log is a small leveled logger: package-level DEBUG/INFO/WARN/ERROR
// functions gated by a DebugOn toggle, writing to stderr, with ANSI-colored
// output only when stderr is a terminal.
package log

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
)

// DebugOn toggles whether DEBUG (and Logger.Debugf) messages are printed.
// Off by default; the evaluator's debug tracing is opt-in.
var DebugOn = false

var colorize = isatty.IsTerminal(os.Stderr.Fd())

func printf(color, level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if colorize {
		fmt.Fprintf(os.Stderr, ansi.Sprintf("@%s{%s} %s\n", color, level, msg))
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", level, msg)
}

// DEBUG prints a debug-level message if DebugOn is true.
func DEBUG(format string, args ...interface{}) {
	if !DebugOn {
		return
	}
	printf("b", "DEBUG:", format, args...)
}

// INFO prints an info-level message unconditionally.
func INFO(format string, args ...interface{}) {
	printf("g", "INFO: ", format, args...)
}

// WARN prints a warning-level message unconditionally.
func WARN(format string, args ...interface{}) {
	printf("Y", "WARN: ", format, args...)
}

// ERROR prints an error-level message unconditionally.
func ERROR(format string, args ...interface{}) {
	printf("R", "ERROR:", format, args...)
}

// Logger is the small injectable logging surface accepted by Evaluator and
// other library types that want to log without importing this package
// directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type packageLogger struct{}

func (packageLogger) Debugf(format string, args ...interface{}) { DEBUG(format, args...) }
func (packageLogger) Infof(format string, args ...interface{})  { INFO(format, args...) }
func (packageLogger) Warnf(format string, args ...interface{})  { WARN(format, args...) }
func (packageLogger) Errorf(format string, args ...interface{}) { ERROR(format, args...) }

// Default returns a Logger backed by this package's global DEBUG/INFO/WARN/
// ERROR functions and DebugOn toggle.
func Default() Logger {
	return packageLogger{}
}

// Nop returns a Logger that discards everything, useful for tests that
// don't want DEBUG spam even with DebugOn set globally by another test.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
