//go:build linux

package waylink

import (
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sys/unix"
)

// minFDCapacity is the minimum number of descriptors a caller should size
// the fds slice it passes to ReceiveMessage to, matching the 24-byte (6 x uint32) ancillary
// buffer this runtime's reference source uses for the common case of a few
// descriptors per receive.
const minFDCapacity = 6

// socketState is the state shared by every Socket cloned from the same
// underlying connection: one kernel descriptor, one serial counter, one
// trace sink. It is reference-counted so the descriptor is closed exactly
// once, by whichever clone retires last.
type socketState struct {
	fd     atomic.Int32
	serial atomic.Uint32
	refs   atomic.Int32
	logger atomic.Pointer[hclog.Logger]
}

// Socket owns a raw kernel file descriptor for a connected UNIX-domain
// stream socket. It carries a monotonically increasing 32-bit serial
// counter used by protocol handlers to stamp outbound events, and an
// optional line-oriented trace sink. Socket is cheap to copy: copies share
// the same underlying descriptor and counter, and Close is reference
// counted so closing is safe to call from any clone.
type Socket struct {
	state *socketState
}

func newSocket(fd int) Socket {
	s := &socketState{}
	s.fd.Store(int32(fd))
	s.refs.Store(1)
	return Socket{state: s}
}

// Connect creates a stream socket in the local-domain family with
// close-on-exec set and connects it to path.
func Connect(path string) (Socket, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return Socket{}, socketError(err)
	}

	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		_ = unix.Close(fd)
		return Socket{}, socketError(err)
	}

	return newSocket(fd), nil
}

// ConnectDefault resolves a path with SocketPathFromEnv and connects to it.
func ConnectDefault() (Socket, error) {
	path, err := SocketPathFromEnv()
	if err != nil {
		return Socket{}, err
	}
	return Connect(path)
}

// fromAccepted wraps a descriptor produced by Listener.Accept. It behaves
// identically to a Socket returned by Connect thereafter.
func fromAccepted(fd int) Socket {
	return newSocket(fd)
}

// Clone returns a Socket sharing this one's descriptor, serial counter, and
// logger. The descriptor is not closed until every clone (the original
// included) has been closed.
func (s Socket) Clone() Socket {
	s.state.refs.Add(1)
	return s
}

// Close closes the underlying descriptor once the last clone of this
// Socket is closed. Calling Close more times than the Socket has been
// cloned is a programmer error; subsequent calls are no-ops.
func (s Socket) Close() error {
	if s.state == nil {
		return nil
	}
	if s.state.refs.Add(-1) > 0 {
		return nil
	}
	fd := s.state.fd.Swap(-1)
	if fd < 0 {
		return nil
	}
	if err := unix.Close(int(fd)); err != nil {
		return socketError(err)
	}
	return nil
}

// FD returns the raw kernel file descriptor.
func (s Socket) FD() int {
	return int(s.state.fd.Load())
}

// SetLogger installs logger as this socket's trace sink. A nil logger
// disables tracing. Because the logger lives in the shared state, setting
// it on one clone affects every clone.
func (s Socket) SetLogger(logger hclog.Logger) {
	if logger == nil {
		s.state.logger.Store(nil)
		return
	}
	s.state.logger.Store(&logger)
}

// Logger returns the current trace sink, or a no-op logger if none was set.
func (s Socket) Logger() hclog.Logger {
	p := s.state.logger.Load()
	if p == nil {
		return hclog.NewNullLogger()
	}
	return *p
}

// NextSerial returns the current counter value, then post-increments it.
// It wraps on overflow. The sequence is shared across every clone of this
// Socket.
func (s Socket) NextSerial() uint32 {
	return s.state.serial.Add(1) - 1
}

// ReceiveMessage performs a non-blocking scatter receive: normal payload
// bytes land in data, and any file descriptors carried as SCM_RIGHTS
// ancillary data land in fds. Every descriptor in every rights-transfer
// record is collected, up to len(fds); the original reference source
// interpretation (first descriptor per record only) is not carried
// forward, per the known deficiency this spec calls out.
//
// Returns the byte count and descriptor count the kernel reported. A
// would-block condition is reported as a *ProtocolError (KindSocket), not a
// distinguished non-error return: callers gate this call on readiness
// externally and are expected to treat any failure here as "try again
// later or give up".
func (s Socket) ReceiveMessage(data []byte, fds []int) (int, int, error) {
	oob := make([]byte, unix.CmsgSpace(len(fds)*4))

	n, oobn, _, _, err := unix.Recvmsg(s.FD(), data, oob, unix.MSG_DONTWAIT)
	if err != nil {
		s.Logger().Trace("receive failed", "error", err)
		return 0, 0, socketError(err)
	}

	if oobn == 0 {
		return n, 0, nil
	}

	scms, err := unix.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		return 0, 0, socketError(err)
	}

	nfds := 0
	for _, scm := range scms {
		if scm.Header.Level != unix.SOL_SOCKET || scm.Header.Type != unix.SCM_RIGHTS {
			continue
		}
		gotFDs, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return 0, 0, socketError(err)
		}
		for _, fd := range gotFDs {
			if nfds >= len(fds) {
				break
			}
			fds[nfds] = fd
			nfds++
		}
	}

	s.Logger().Trace("received message", "bytes", n, "fds", nfds)
	return n, nfds, nil
}

// Write performs a non-blocking send of a single contiguous buffer with no
// ancillary data. A short write (the kernel accepting fewer bytes than
// len(data)) is reported as an error; this runtime does not retry partial
// sends.
func (s Socket) Write(data []byte) error {
	n, err := unix.SendmsgN(s.FD(), data, nil, nil, unix.MSG_DONTWAIT)
	if err != nil {
		s.Logger().Trace("write failed", "error", err)
		return socketError(err)
	}
	if n != len(data) {
		return socketError(unix.EMSGSIZE)
	}
	return nil
}

// WriteWithControlData sends data with fds attached as a single
// rights-transfer ancillary record. Like Write, a short write is reported
// as an error rather than retried.
func (s Socket) WriteWithControlData(data []byte, fds []int) error {
	rights := unix.UnixRights(fds...)
	n, err := unix.SendmsgN(s.FD(), data, rights, nil, unix.MSG_DONTWAIT)
	if err != nil {
		s.Logger().Trace("write with control data failed", "error", err)
		return socketError(err)
	}
	if n != len(data) {
		return socketError(unix.EMSGSIZE)
	}
	return nil
}
