package server

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/Tyrowin/goboard/internal/store"
)

// Config holds the TCP server settings.
type Config struct {
	ListenAddr   string
	Workers      int
	RateBurst    int
	RateInterval time.Duration
}

// request is one fully framed client payload awaiting a pool worker.
type request struct {
	conn    *conn
	payload []byte
}

// Server owns the listener, the connection set, and the worker pool.
// Connection goroutines only assemble frames; all business logic runs on
// the pool workers, so a stalled connection holds nothing but its own
// buffers.
type Server struct {
	cfg      Config
	store    *store.Store
	listener net.Listener
	requests chan request

	connsMu sync.Mutex
	conns   map[*conn]struct{}

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a server for the given store. Zero config fields fall back
// to defaults (8 workers, 32 requests/second per connection).
func New(cfg Config, st *store.Store) *Server {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 32
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:      cfg,
		store:    st,
		requests: make(chan request, 4*cfg.Workers),
		conns:    make(map[*conn]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start binds the listener and launches the worker pool and the accept
// loop. It returns once the server is accepting connections.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	s.listener = listener
	log.Printf("Board server listening on %s with %d workers", listener.Addr(), s.cfg.Workers)

	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.worker()
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop()
	}()
	return nil
}

// Addr reports the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) acceptLoop() {
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("Accept error: %v", err)
			continue
		}

		c := newConn(nc, s.cfg.RateBurst, s.cfg.RateInterval)
		s.connsMu.Lock()
		s.conns[c] = struct{}{}
		count := len(s.conns)
		s.connsMu.Unlock()
		log.Printf("Client connected from %s. Total connections: %d", c.addr, count)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.readLoop(c)
		}()
	}
}

// readLoop assembles frames off one connection and queues them for the
// pool. Frame state lives in the connection's FrameReader, so partial
// reads never lose bytes.
func (s *Server) readLoop(c *conn) {
	defer s.dropConn(c)

	for {
		payload, err := c.reader.Next()
		if err != nil {
			if !isExpectedReadError(err) {
				log.Printf("Dropping connection %s: %v", c.addr, err)
			}
			return
		}

		if !c.limiter.allow() {
			log.Printf("Rate limit exceeded for %s; discarding request", c.addr)
			continue
		}

		select {
		case s.requests <- request{conn: c, payload: payload}:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) dropConn(c *conn) {
	s.connsMu.Lock()
	delete(s.conns, c)
	count := len(s.conns)
	s.connsMu.Unlock()
	c.Close()
	log.Printf("Client %s disconnected. Total connections: %d", c.addr, count)
}

// Shutdown stops accepting, closes every connection, and waits for the
// workers and connection goroutines to finish, up to the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.connsMu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.connsMu.Unlock()
	for _, c := range conns {
		c.Close()
	}

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-time.After(timeout):
		log.Println("Server shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
