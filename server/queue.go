package server

import (
	"net"
	"sync"
)

// Queue is the FIFO handoff between the acceptor and the worker pool.
// Depth is unbounded; backpressure, if wanted, is the acceptor's concern.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []net.Conn
	stopping bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends conn to the tail and wakes one blocked worker. Connections
// pushed after Stop are closed immediately instead of queued.
func (q *Queue) Push(conn net.Conn) {
	q.mu.Lock()
	if q.stopping {
		q.mu.Unlock()
		conn.Close()
		return
	}
	q.items = append(q.items, conn)
	q.cond.Signal()
	q.mu.Unlock()
}

// Pop blocks until a connection is available or Stop has been called and
// the queue has drained, in which case it returns false.
func (q *Queue) Pop() (net.Conn, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.stopping {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}

	conn := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return conn, true
}

// Stop marks the queue as stopping and wakes every blocked worker. Already
// queued connections are still handed out until the queue drains.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.stopping = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Len returns the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
