package server

import (
	"bytes"
	"log"
	"net"
	"runtime/debug"
	"sync"
)

// Buffer pools for per-request scratch allocations.

// chunkBufferPool holds 4KB buffers for reading from connections
var chunkBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 4096)
		return &buf
	},
}

// requestBufferPool holds 8KB buffers for accumulating request headers
var requestBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 8192)
		return &buf
	},
}

// headerBufferPool holds bytes.Buffer for building response headers
var headerBufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Pool size limits - buffers larger than this are discarded
const maxPoolBufferSize = 16384 // 16KB

// Pool is a fixed set of workers, each looping: pop a connection from the
// queue, run the handler on it, repeat. Workers exit when Pop reports the
// queue stopped and drained.
type Pool struct {
	size    int
	handler func(net.Conn)
	wg      sync.WaitGroup
}

// NewPool creates a pool of size workers running handler. The handler owns
// the connection and must close it.
func NewPool(size int, handler func(net.Conn)) *Pool {
	return &Pool{size: size, handler: handler}
}

// Start launches the workers against q.
func (p *Pool) Start(q *Queue) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(q)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(q *Queue) {
	defer p.wg.Done()
	for {
		conn, ok := q.Pop()
		if !ok {
			return
		}
		p.handle(conn)
	}
}

// handle isolates one connection: a panic is logged, answered with a 500
// when the connection is still writable, and never takes the worker down.
func (p *Pool) handle(conn net.Conn) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("PANIC recovered: %v\n%s", err, debug.Stack())
			writeError(conn, statusInternalError)
			conn.Close()
		}
	}()
	p.handler(conn)
}
