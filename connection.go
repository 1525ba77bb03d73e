package waylink

import "io"

// defaultDataBufSize and defaultFDBufSize are the scratch buffer sizes
// Drive allocates once, at Connection construction. They are sized well
// past the spec-mandated minimums (1024 bytes, 6 descriptors) to avoid
// truncating realistic batches; a host that needs more attaches its own
// Connection per socket rather than sharing buffers across connections.
const (
	defaultDataBufSize = 4096
	defaultFDBufSize   = 32
)

// Connection owns a Socket and an empty Registry, and drives the framing
// and dispatch loop described in spec.md §4.5. A Connection is not safe to
// share across goroutines: the host must drive exactly one Connection from
// one goroutine at a time. Controllers cloned from a Connection may be used
// concurrently from other goroutines (e.g. to push events asynchronously),
// since Registry and Socket serialize their own mutations internally.
type Connection struct {
	registry *Registry
	socket   Socket

	dataBuf []byte
	fdBuf   []int
}

// NewConnection takes ownership of socket and creates an empty Registry for
// it.
func NewConnection(socket Socket) *Connection {
	return &Connection{
		registry: NewRegistry(),
		socket:   socket,
		dataBuf:  make([]byte, defaultDataBufSize),
		fdBuf:    make([]int, defaultFDBufSize),
	}
}

// Socket returns the connection's socket.
func (c *Connection) Socket() Socket {
	return c.socket
}

// Controller returns a fresh Controller sharing this Connection's Registry
// and Socket.
func (c *Connection) Controller() *Controller {
	return newController(c.registry, c.socket)
}

// Insert mirrors Registry.Insert.
func (c *Connection) Insert(id ObjectID, handler Handler) {
	c.registry.Insert(id, handler)
}

// InsertNextClient mirrors Registry.InsertNextClient.
func (c *Connection) InsertNextClient(handler Handler) ObjectID {
	return c.registry.InsertNextClient(handler)
}

// Remove mirrors Registry.Remove.
func (c *Connection) Remove(id ObjectID) {
	c.registry.Remove(id)
}

// Drive performs one receive on the socket, splits the result into framed
// messages, and dispatches each in order:
//
//  1. One non-blocking receive fills the connection's scratch buffers.
//  2. For each message, in wire order: decode its header, look up the
//     handler registered under header.ObjectID (WrongObject aborts the
//     whole batch; messages already dispatched stay applied), and invoke
//     its Dispatch with cursors positioned immediately past the header.
//  3. The Task the handler returns is applied after Dispatch returns:
//     Create inserts, Destroy removes, None is a no-op.
//  4. The outer cursor advances by header.Size regardless of how many
//     bytes Dispatch actually consumed from the payload cursor — a handler
//     that mis-frames its own argument reads does not corrupt parsing of
//     the next message in the batch.
//
// A dispatch error aborts the batch and is returned to the caller; it does
// not roll back mutations already applied from earlier messages in the
// same batch.
func (c *Connection) Drive() error {
	n, nfds, err := c.socket.ReceiveMessage(c.dataBuf, c.fdBuf)
	if err != nil {
		return err
	}

	fds := &FDCursor{fds: append([]int(nil), c.fdBuf[:nfds]...)}

	offset := 0
	for offset < n {
		if offset+HeaderSize > n {
			return ioError(io.ErrUnexpectedEOF)
		}
		header := decodeHeader(c.dataBuf[offset : offset+HeaderSize])

		if int(header.Size) < HeaderSize || offset+int(header.Size) > n {
			return ioError(io.ErrUnexpectedEOF)
		}

		handler, err := c.registry.Lookup(header.ObjectID)
		if err != nil {
			return err
		}

		payload := &PayloadCursor{buf: c.dataBuf[offset+HeaderSize : offset+int(header.Size)]}

		task, err := handler.Dispatch(c.Controller(), header, payload, fds)
		if err != nil {
			return err
		}

		switch task.kind {
		case taskCreate:
			c.registry.Insert(task.id, task.handler)
		case taskDestroy:
			c.registry.Remove(task.id)
		}

		offset += int(header.Size)
	}

	return nil
}
