//go:build linux

package waylink

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSocketSerialMonotonic(t *testing.T) {
	a, _ := socketPair(t)

	prev := a.NextSerial()
	for i := 0; i < 100; i++ {
		next := a.NextSerial()
		if next != prev+1 {
			t.Fatalf("NextSerial() = %d, want %d", next, prev+1)
		}
		prev = next
	}
}

func TestSocketSerialSharedAcrossClones(t *testing.T) {
	a, _ := socketPair(t)
	clone := a.Clone()

	first := a.NextSerial()
	second := clone.NextSerial()
	if second != first+1 {
		t.Fatalf("clone NextSerial() = %d, want %d", second, first+1)
	}
}

func TestSocketCloseIsRefCounted(t *testing.T) {
	a, _ := socketPair(t)
	clone := a.Clone()

	if err := clone.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	// fd must still be valid: confirm via fstat on the original handle.
	var st unix.Stat_t
	if err := unix.Fstat(a.FD(), &st); err != nil {
		t.Fatalf("fd closed after releasing one of two clones: %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := unix.Fstat(a.FD(), &st); err == nil {
		t.Fatal("fd still valid after releasing the last clone")
	}
}

func TestSocketWriteAndReceiveMessage(t *testing.T) {
	a, b := socketPair(t)

	payload := []byte{1, 2, 3, 4}
	if err := a.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 64)
	fds := make([]int, minFDCapacity)
	n, nfds, err := b.ReceiveMessage(buf, fds)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if nfds != 0 {
		t.Errorf("nfds = %d, want 0", nfds)
	}
	if string(buf[:n]) != string(payload) {
		t.Errorf("received %v, want %v", buf[:n], payload)
	}
}

func TestSocketFDPassing(t *testing.T) {
	a, b := socketPair(t)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if err := a.WriteWithControlData([]byte("x"), []int{int(w.Fd())}); err != nil {
		t.Fatalf("WriteWithControlData: %v", err)
	}

	buf := make([]byte, 16)
	fds := make([]int, minFDCapacity)
	n, nfds, err := b.ReceiveMessage(buf, fds)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	if nfds != 1 {
		t.Fatalf("nfds = %d, want 1", nfds)
	}
	defer unix.Close(fds[0])

	if _, err := unix.Write(fds[0], []byte("ping")); err != nil {
		t.Errorf("write to received fd: %v", err)
	}
}
