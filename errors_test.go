package waylink

import (
	"errors"
	"io"
	"testing"
)

func TestProtocolErrorIsSentinel(t *testing.T) {
	err := WrongObjectError(42)
	if !errors.Is(err, ErrWrongObject) {
		t.Errorf("errors.Is(%v, ErrWrongObject) = false, want true", err)
	}
	if errors.Is(err, ErrSocket) {
		t.Errorf("errors.Is(%v, ErrSocket) = true, want false", err)
	}
}

func TestProtocolErrorUnwrap(t *testing.T) {
	err := ioError(io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("errors.Is(%v, io.ErrUnexpectedEOF) = false, want true", err)
	}
}

func TestProtocolErrorAs(t *testing.T) {
	err := WrongOpcodeError("wl_display", 1, 7)
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As into *ProtocolError failed")
	}
	if pe.Interface != "wl_display" || pe.ObjectID != 1 || pe.Opcode != 7 {
		t.Errorf("unexpected fields: %+v", pe)
	}
}

func TestProtocolErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *ProtocolError
	}{
		{"wrong object", WrongObjectError(3)},
		{"wrong opcode", WrongOpcodeError("wl_surface", 3, 1)},
		{"io wrapped", ioError(io.EOF)},
		{"socket wrapped", socketError(io.EOF)},
		{"other", otherError("missing %s", "XDG_RUNTIME_DIR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() == "" {
				t.Error("Error() returned empty string")
			}
		})
	}
}
