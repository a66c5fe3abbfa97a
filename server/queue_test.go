package server

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopConn is a net.Conn stub for exercising queue and pool mechanics
// without real sockets.
type nopConn struct {
	closed atomic.Bool
}

func (c *nopConn) Read(b []byte) (int, error)       { return 0, io.EOF }
func (c *nopConn) Write(b []byte) (int, error)      { return len(b), nil }
func (c *nopConn) Close() error                     { c.closed.Store(true); return nil }
func (c *nopConn) LocalAddr() net.Addr              { return nil }
func (c *nopConn) RemoteAddr() net.Addr             { return nil }
func (c *nopConn) SetDeadline(time.Time) error      { return nil }
func (c *nopConn) SetReadDeadline(time.Time) error  { return nil }
func (c *nopConn) SetWriteDeadline(time.Time) error { return nil }

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	conns := []*nopConn{{}, {}, {}}
	for _, c := range conns {
		q.Push(c)
	}
	assert.Equal(t, 3, q.Len())

	for i, want := range conns {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.True(t, got == want, "pop %d out of order", i)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	got := make(chan net.Conn, 1)
	go func() {
		c, ok := q.Pop()
		if ok {
			got <- c
		}
	}()

	select {
	case <-got:
		t.Fatal("Pop returned before anything was pushed")
	case <-time.After(50 * time.Millisecond):
	}

	want := &nopConn{}
	q.Push(want)

	select {
	case c := <-got:
		assert.True(t, c == want)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after Push")
	}
}

func TestQueueStopDrainsBeforeSignalingShutdown(t *testing.T) {
	q := NewQueue()
	q.Push(&nopConn{})

	q.Stop()

	// The queued connection is still handed out...
	_, ok := q.Pop()
	assert.True(t, ok)
	// ...then consumers get the shutdown signal.
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueStopWakesAllBlockedConsumers(t *testing.T) {
	q := NewQueue()

	done := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, ok := q.Pop()
			done <- ok
		}()
	}
	time.Sleep(20 * time.Millisecond)

	q.Stop()

	for i := 0; i < 3; i++ {
		select {
		case ok := <-done:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("blocked consumer not woken by Stop")
		}
	}
}

func TestQueuePushAfterStopClosesConnection(t *testing.T) {
	q := NewQueue()
	q.Stop()

	c := &nopConn{}
	q.Push(c)

	assert.Equal(t, 0, q.Len())
	assert.True(t, c.closed.Load(), "late connection should be closed, not queued")
}
