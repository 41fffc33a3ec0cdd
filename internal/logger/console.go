package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colorized printing functions for the console, one per level.
// They behave like fmt.Printf; messages carry their own "[LEVEL]" prefix and newline.

// Info logs progress and success messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan once enabled through Init.
// It starts out as a no-op so packages can log before the CLI has parsed --debug.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug output on the console.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
