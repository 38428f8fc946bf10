// Package logger is the leveled stderr logger shared by every depsweep package.
package logger

import (
	"io"
	"log"
	"os"
)

var (
	// Logger is the global logger.
	Logger *log.Logger

	// Verbose controls whether debug, info and warning messages are printed.
	Verbose bool
)

func init() {
	Logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)

	// Overridden by SetVerbose when --verbose is passed.
	Verbose = os.Getenv("DEPSWEEP_VERBOSE") == "1"
}

// SetVerbose enables or disables verbose logging at runtime.
func SetVerbose(enabled bool) {
	Verbose = enabled
}

// SetOutput redirects logger output.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func Debugf(format string, args ...any) {
	if Verbose {
		Logger.Printf("[DEBUG] "+format, args...)
	}
}

func Infof(format string, args ...any) {
	if Verbose {
		Logger.Printf("[INFO] "+format, args...)
	}
}

func Warnf(format string, args ...any) {
	if Verbose {
		Logger.Printf("[WARN] "+format, args...)
	}
}

// Errorf always prints, regardless of Verbose.
func Errorf(format string, args ...any) {
	Logger.Printf("[ERROR] "+format, args...)
}
