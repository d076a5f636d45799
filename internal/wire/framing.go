package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of the length prefix preceding every payload.
const HeaderSize = 4

// MaxFrameSize bounds the payload size a peer may announce. Lengths above
// it are treated as a framing error and the connection is dropped.
const MaxFrameSize = 1 << 20

// ErrFrameTooLarge reports a length prefix exceeding MaxFrameSize.
var ErrFrameTooLarge = errors.New("wire: frame exceeds maximum size")

// FrameReader assembles length-prefixed frames from a byte stream that may
// deliver arbitrarily short reads. The fixed header buffer is reused
// between frames; the body buffer is allocated exactly once per frame,
// after the full header has been decoded, and is never reallocated while a
// frame is in flight. All fill state survives a failed Read (for example a
// deadline expiry), so a subsequent Next call resumes mid-frame without
// losing previously read bytes.
type FrameReader struct {
	r          io.Reader
	header     [HeaderSize]byte
	headerFill int
	body       []byte
	bodyFill   int
}

// NewFrameReader returns a FrameReader consuming r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Next blocks until one complete frame payload has been read and returns
// it. The returned slice is owned by the caller; the reader's per-frame
// state is reset so the next call frames the following message.
func (fr *FrameReader) Next() ([]byte, error) {
	for fr.headerFill < HeaderSize {
		n, err := fr.r.Read(fr.header[fr.headerFill:])
		fr.headerFill += n
		if fr.headerFill < HeaderSize && err != nil {
			return nil, err
		}
	}
	if fr.body == nil {
		size := binary.BigEndian.Uint32(fr.header[:])
		if size > MaxFrameSize {
			return nil, ErrFrameTooLarge
		}
		fr.body = make([]byte, size)
		fr.bodyFill = 0
	}
	for fr.bodyFill < len(fr.body) {
		n, err := fr.r.Read(fr.body[fr.bodyFill:])
		fr.bodyFill += n
		if fr.bodyFill < len(fr.body) && err != nil {
			return nil, err
		}
	}
	payload := fr.body
	fr.headerFill = 0
	fr.body = nil
	fr.bodyFill = 0
	return payload, nil
}

// WriteFrame writes a length prefix followed by the payload as a single
// Write call, so concurrent writers serialized by the caller never
// interleave partial frames.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	buf := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("wire: writing frame: %w", err)
	}
	return nil
}
