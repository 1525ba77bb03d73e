package waylink

import (
	"encoding/binary"
	"io"
)

// HeaderSize is the fixed 8-byte prefix of every message on the wire:
// object id (u32), opcode (u16), size (u16).
const HeaderSize = 8

// Header is the fixed prefix of every message. All integer fields are read
// and written in the host's native byte order — this is a local-socket
// protocol, and interoperability is within a single machine.
type Header struct {
	ObjectID ObjectID
	Opcode   Opcode
	// Size is the total message size in bytes, including this header.
	Size uint16
}

// encode writes the header into the first HeaderSize bytes of buf in native
// byte order. buf must be at least HeaderSize bytes long.
func (h Header) encode(buf []byte) {
	binary.NativeEndian.PutUint32(buf[0:4], uint32(h.ObjectID))
	binary.NativeEndian.PutUint16(buf[4:6], uint16(h.Opcode))
	binary.NativeEndian.PutUint16(buf[6:8], h.Size)
}

// decodeHeader reads a Header from the first HeaderSize bytes of buf.
func decodeHeader(buf []byte) Header {
	return Header{
		ObjectID: ObjectID(binary.NativeEndian.Uint32(buf[0:4])),
		Opcode:   Opcode(binary.NativeEndian.Uint16(buf[4:6])),
		Size:     binary.NativeEndian.Uint16(buf[6:8]),
	}
}

// EncodeHeader returns the wire bytes for h. It is exposed for generated
// handler code that needs to assemble an outbound message: write the header
// with EncodeHeader, then append opcode-specific argument bytes before
// handing the buffer to Socket.Write.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	h.encode(buf)
	return buf
}

// PayloadCursor reads the argument bytes of one message, positioned
// immediately past its header. It implements io.Reader so generated decoder
// code can use encoding/binary.Read directly with binary.NativeEndian.
//
// The framing layer does not enforce the per-message boundary beyond
// advancing its own outer cursor by header.Size once dispatch returns: a
// handler that reads fewer or more bytes than it was given does not disturb
// framing of the next message.
type PayloadCursor struct {
	buf    []byte
	offset int
}

// Read implements io.Reader.
func (c *PayloadCursor) Read(p []byte) (int, error) {
	if c.offset >= len(c.buf) {
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.offset:])
	c.offset += n
	return n, nil
}

// Remaining returns the number of unread bytes in the cursor.
func (c *PayloadCursor) Remaining() int {
	return len(c.buf) - c.offset
}

// Next consumes and returns the next n bytes. It fails with a KindIO
// ProtocolError if fewer than n bytes remain.
func (c *PayloadCursor) Next(n int) ([]byte, error) {
	if c.offset+n > len(c.buf) {
		return nil, ioError(io.ErrUnexpectedEOF)
	}
	b := c.buf[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// FDCursor hands out file descriptors received alongside one batch of
// bytes, in the order the kernel delivered them. Handlers correlate FDs
// with payload positionally: each call to Next consumes the next
// descriptor in arrival order, regardless of which message is currently
// being dispatched.
type FDCursor struct {
	fds []int
	idx int
}

// Next consumes and returns the next available file descriptor. It fails
// with a KindIO ProtocolError if no descriptor remains.
func (c *FDCursor) Next() (int, error) {
	if c.idx >= len(c.fds) {
		return -1, ioError(io.ErrUnexpectedEOF)
	}
	fd := c.fds[c.idx]
	c.idx++
	return fd, nil
}

// Remaining returns the number of unconsumed file descriptors.
func (c *FDCursor) Remaining() int {
	return len(c.fds) - c.idx
}
