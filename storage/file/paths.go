package file

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform data directory.
const AppName = "charkeep"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultDir returns the platform-specific application data directory.
//
// Linux:   $XDG_DATA_HOME/charkeep (fallback ~/.local/share/charkeep)
// macOS:   ~/Library/Application Support/charkeep
// Windows: %APPDATA%/charkeep
func DefaultDir() (string, error) {
	switch platformDir.goos {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppName), nil
	default:
		// os.UserConfigDir returns ~/Library/Application Support on macOS
		// and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
}

// ResolveDir returns the data directory following the precedence chain:
// explicit value > DefaultDir().
func ResolveDir(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	return DefaultDir()
}
