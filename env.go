package waylink

import (
	"os"
	"path/filepath"
)

const defaultDisplayName = "wayland-0"

// SocketPathFromEnv resolves the default compositor socket path: the
// directory named by XDG_RUNTIME_DIR (required), joined with the value of
// WAYLAND_DISPLAY, or the literal "wayland-0" if that variable is unset.
//
// It returns a KindOther ProtocolError if XDG_RUNTIME_DIR is unset, never a
// bare error from the os package, so callers can uniformly match on
// *ProtocolError.
func SocketPathFromEnv() (string, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", otherError("XDG_RUNTIME_DIR is not set")
	}

	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = defaultDisplayName
	}

	return filepath.Join(runtimeDir, display), nil
}
