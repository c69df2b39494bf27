package relay

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSocketPath returns the default injection socket location.
func DefaultSocketPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir != "" {
		return filepath.Join(runtimeDir, "pane-pilot", "inject.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("pane-pilot-%d", os.Getuid()), "inject.sock")
}
