//go:build linux

package waylink

import (
	"golang.org/x/sys/unix"
)

// listenBacklog is the backlog passed to listen(2), matching the value
// skylane and libwayland both use for the compositor socket.
const listenBacklog = 128

// Listener owns a bound, listening descriptor and the filesystem path it
// was bound to. It produces new connected Sockets via Accept; on Close it
// unlinks the filesystem path, swallowing any error — that is the one place
// in this runtime an error is intentionally discarded.
type Listener struct {
	fd   int
	path string
}

// Bind creates a stream socket in the local-domain family with
// close-on-exec, binds it to path, and starts listening. Any stale file
// already at path causes bind to fail; this runtime does not unlink before
// binding.
func Bind(path string) (*Listener, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, socketError(err)
	}

	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return nil, socketError(err)
	}

	if err := unix.Listen(fd, listenBacklog); err != nil {
		_ = unix.Close(fd)
		return nil, socketError(err)
	}

	return &Listener{fd: fd, path: path}, nil
}

// BindDefault resolves a path with SocketPathFromEnv and binds to it.
func BindDefault() (*Listener, error) {
	path, err := SocketPathFromEnv()
	if err != nil {
		return nil, err
	}
	return Bind(path)
}

// Accept blocks until a peer connects, then returns a new Socket over that
// connection.
func (l *Listener) Accept() (Socket, error) {
	fd, _, err := unix.Accept(l.fd)
	if err != nil {
		return Socket{}, socketError(err)
	}
	return fromAccepted(fd), nil
}

// Path returns the filesystem path this listener is bound to.
func (l *Listener) Path() string {
	return l.path
}

// FD returns the raw kernel file descriptor of the listening socket.
func (l *Listener) FD() int {
	return l.fd
}

// Close closes the listening descriptor and unlinks the bound path,
// ignoring any error from the unlink.
func (l *Listener) Close() error {
	err := unix.Close(l.fd)
	_ = unix.Unlink(l.path)
	if err != nil {
		return socketError(err)
	}
	return nil
}
