// Package server implements a static file server over a one-shot
// request/response protocol. Accepted connections are queued to a fixed
// worker pool; file contents are served through a pin-counted LRU cache so
// repeated requests avoid disk reads.
package server

import (
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/statikd/statikd/cache"
)

// Server owns the listener, the connection queue, the worker pool and the
// content cache. Construct with New, bind with Listen, run with Serve and
// stop with Shutdown. The cache and queue are shared only through explicit
// references; there is no package-level state.
type Server struct {
	cfg   *Config
	cache *cache.Cache
	queue *Queue
	pool  *Pool

	listener net.Listener
}

// New validates cfg and assembles a server. The returned server holds no
// resources until Listen.
func New(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:   cfg,
		cache: cache.New(cfg.CacheBytes),
		queue: NewQueue(),
	}
	s.pool = NewPool(cfg.Workers, s.handleConnection)
	return s, nil
}

// Listen binds the listening socket. A bind failure is fatal to startup
// and is returned to the caller.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("bind port %d: %w", s.cfg.Port, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve starts the workers and accepts connections until the listener is
// closed by Shutdown. It then stops the queue, waits for every in-flight
// request to finish and returns. Nothing is forcibly aborted.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}

	s.pool.Start(s.queue)
	log.Printf("listening on %s, root %s, cache %d bytes, %d workers",
		s.listener.Addr(), s.cfg.ContentRoot, s.cfg.CacheBytes, s.cfg.Workers)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			log.Printf("accept: %v", err)
			continue
		}
		s.queue.Push(conn)
	}

	s.queue.Stop()
	s.pool.Wait()

	st := s.cache.Stats()
	log.Printf("cache: %d hits, %d misses, %d evictions, %d rejections; exited cleanly",
		st.Hits, st.Misses, st.Evictions, st.Rejections)
	return nil
}

// Shutdown closes the listener, which makes Serve drain the queue, wait
// for the workers and return.
func (s *Server) Shutdown() {
	if s.listener != nil {
		s.listener.Close()
	}
}

// handleConnection runs the request pipeline for one connection: read,
// validate, resolve, cache lookup-or-load, respond. Every branch closes
// the connection exactly once and releases any pinned handle; a failure
// on one connection never reaches another.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	raw, err := readRequest(conn, s.cfg.ReadTimeout, s.cfg.MaxHeaderBytes)
	if err != nil {
		// Oversized headers get an answer; a dead or silent peer does not.
		if errors.Is(err, errHeadersTooLarge) {
			logRequest("?", "?", writeError(conn, statusBadRequest), "")
		}
		return
	}

	req, err := parseRequestLine(raw)
	if err != nil {
		logRequest("?", "?", writeError(conn, statusBadRequest), "")
		return
	}

	if req.method != "GET" {
		logRequest(req.method, req.path, writeError(conn, statusMethodNotAllowed), "")
		return
	}

	fullPath, err := resolvePath(s.cfg.ContentRoot, s.cfg.DefaultDocument, req.path)
	if err != nil {
		logRequest(req.method, req.path, writeError(conn, statusForbidden), "")
		return
	}

	if h, ok := s.cache.Lookup(fullPath); ok {
		defer h.Release()
		code := writeResponse(conn, statusOK, contentTypeFor(fullPath), h.Bytes())
		logRequest(req.method, req.path, code, "hit")
		return
	}

	data, err := loadFile(fullPath)
	switch {
	case errors.Is(err, errNotFound):
		logRequest(req.method, req.path, writeError(conn, statusNotFound), "")
		return
	case err != nil:
		log.Printf("load: %v", err)
		logRequest(req.method, req.path, writeError(conn, statusInternalError), "")
		return
	}

	source := "miss"
	body := data
	if h, ok := s.cache.Insert(fullPath, data); ok {
		defer h.Release()
		body = h.Bytes()
	} else {
		// Too large to cache. The client still gets the bytes we read.
		source = "uncached"
	}
	code := writeResponse(conn, statusOK, contentTypeFor(fullPath), body)
	logRequest(req.method, req.path, code, source)
}

// CacheStats exposes the content cache counters.
func (s *Server) CacheStats() cache.Stats {
	return s.cache.Stats()
}
