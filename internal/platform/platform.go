// ABOUTME: Runtime platform detection and small filesystem helpers.
// ABOUTME: Platform checks used to pick the bundled audio switching tool.

package platform

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Operating systems with a bundled audio switching tool
const (
	Windows = "windows"
	MacOS   = "darwin"
	Linux   = "linux"
)

// GOOS returns the current operating system name
func GOOS() string {
	return runtime.GOOS
}

// IsWindows returns true when running on Windows
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// IsMacOS returns true when running on macOS
func IsMacOS() bool {
	return runtime.GOOS == MacOS
}

// IsLinux returns true when running on Linux
func IsLinux() bool {
	return runtime.GOOS == Linux
}

// Is64Bit reports whether the running binary uses 64-bit pointers
func Is64Bit() bool {
	return strconv.IntSize == 64
}

// FileExists returns true if the path exists (file or directory)
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ExpandEnv expands ${VAR} and $VAR references.
// Unset variables are left untouched so callers can detect them.
func ExpandEnv(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}
