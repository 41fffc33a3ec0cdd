// Package workdir changes the process working directory for the duration of a call.
package workdir

import (
	"fmt"
	"os"

	"hmss/internal/logger"
)

// Run changes into dir, calls fn, and changes back to the previous directory.
// The previous directory is restored whether fn returns an error or panics.
//
// The working directory is process-wide: callers must not use Run from
// concurrent goroutines.
func Run(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change into %s: %w", dir, err)
	}
	logger.Debug("[DEBUG] Changed into %s\n", dir)

	defer func() {
		if cerr := os.Chdir(prev); cerr != nil {
			logger.Error("[ERROR] Failed to return to %s: %v\n", prev, cerr)
			if err == nil {
				err = fmt.Errorf("failed to return to %s: %w", prev, cerr)
			}
		}
	}()

	return fn()
}
