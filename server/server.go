// Package server runs the NDJSON JSON-RPC listener: one goroutine per
// accepted connection, each owning its own read/dispatch/write pipeline.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mnehpets/streamrpc/framing"
	"github.com/mnehpets/streamrpc/jsonrpc"
)

// Server accepts byte-stream connections and supervises one pipeline per
// connection. Connections share nothing but the method registry.
type Server struct {
	addr         string
	registry     *jsonrpc.Registry
	maxLineBytes int
	log          zerolog.Logger

	dispatcher *jsonrpc.Dispatcher
	listener   net.Listener
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func New(addr string, registry *jsonrpc.Registry) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:         addr,
		registry:     registry,
		maxLineBytes: framing.DefaultMaxLineBytes,
		log:          zerolog.Nop(),
		done:         make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		conns:        make(map[net.Conn]struct{}),
	}
}

// SetLogger replaces the no-op default. Must be called before Start.
func (s *Server) SetLogger(log zerolog.Logger) {
	s.log = log
}

// SetMaxLineBytes bounds per-connection line buffering. Must be called before
// Start.
func (s *Server) SetMaxLineBytes(n int) {
	s.maxLineBytes = n
}

// Start begins listening and accepting connections. It does not block.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.dispatcher = jsonrpc.NewDispatcher(s.registry, s.log)
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the bound listener address, for callers that started the
// server on ":0".
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop closes the listener and every open connection, then waits for all
// pipelines to drain.
func (s *Server) Stop() {
	close(s.done)
	s.cancel()
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				if errors.Is(err, net.ErrClosed) {
					return
				}
				s.log.Warn().Err(err).Msg("accept failed")
				continue
			}
		}
		s.track(conn)
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
