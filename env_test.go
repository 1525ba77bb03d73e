package waylink

import "testing"

func TestSocketPathFromEnvMissingRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	_, err := SocketPathFromEnv()
	if err == nil {
		t.Fatal("SocketPathFromEnv with no XDG_RUNTIME_DIR: want error, got nil")
	}
	pe, ok := err.(*ProtocolError)
	if !ok || pe.Kind != KindOther {
		t.Fatalf("error = %v, want KindOther", err)
	}
}

func TestSocketPathFromEnvDefaultDisplay(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "")

	got, err := SocketPathFromEnv()
	if err != nil {
		t.Fatalf("SocketPathFromEnv: %v", err)
	}
	want := "/run/user/1000/wayland-0"
	if got != want {
		t.Errorf("SocketPathFromEnv() = %q, want %q", got, want)
	}
}

func TestSocketPathFromEnvExplicitDisplay(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "wayland-2")

	got, err := SocketPathFromEnv()
	if err != nil {
		t.Fatalf("SocketPathFromEnv: %v", err)
	}
	want := "/run/user/1000/wayland-2"
	if got != want {
		t.Errorf("SocketPathFromEnv() = %q, want %q", got, want)
	}
}
