package server

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/Tyrowin/goboard/internal/wire"
)

// conn is one client connection. The FrameReader carries the in-flight
// frame state; the write mutex serializes replies from different pool
// workers so frames never interleave.
type conn struct {
	nc      net.Conn
	addr    string
	reader  *wire.FrameReader
	limiter *rateLimiter

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newConn(nc net.Conn, burst int, interval time.Duration) *conn {
	return &conn{
		nc:      nc,
		addr:    nc.RemoteAddr().String(),
		reader:  wire.NewFrameReader(nc),
		limiter: newRateLimiter(burst, interval),
	}
}

// WriteMessage frames and writes one reply.
func (c *conn) WriteMessage(msg *wire.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wire.WriteFrame(c.nc, payload)
}

// Close closes the underlying connection once.
func (c *conn) Close() {
	c.closeOnce.Do(func() {
		_ = c.nc.Close()
	})
}

// isExpectedReadError checks for errors that are routine when a peer
// disconnects or the server shuts down.
func isExpectedReadError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return strings.Contains(err.Error(), "connection reset by peer")
}
