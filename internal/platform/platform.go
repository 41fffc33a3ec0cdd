package platform

import (
	"runtime"
	"slices"
)

// Platform names accepted in the this_platform config key.
const (
	Ubuntu     = "ubuntu"
	ChromeOS   = "chrome-os"
	Raspbian   = "raspbian"
	LinuxBased = "linux-based"
)

// Supported is the allow-list of platforms the installer will run on.
var Supported = []string{Ubuntu, ChromeOS, Raspbian, LinuxBased}

// goos is swapped in tests.
var goos = runtime.GOOS

// IsLinux returns true if the host kernel is Linux.
func IsLinux() bool {
	return goos == "linux"
}

// IsSupported returns true if name is on the allow-list.
func IsSupported(name string) bool {
	return slices.Contains(Supported, name)
}

// Check returns true if the host is Linux and name is on the allow-list.
func Check(name string) bool {
	return IsLinux() && IsSupported(name)
}
