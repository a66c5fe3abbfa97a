package server

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectResponse(t *testing.T, write func(conn net.Conn)) string {
	t.Helper()
	a, b := net.Pipe()
	go func() {
		write(a)
		a.Close()
	}()
	got, err := io.ReadAll(b)
	require.NoError(t, err)
	b.Close()
	return string(got)
}

func TestWriteResponseWireFormat(t *testing.T) {
	got := collectResponse(t, func(conn net.Conn) {
		writeResponse(conn, statusOK, "text/html", []byte("<p>hi</p>"))
	})

	assert.Equal(t,
		"HTTP/1.0 200 OK\r\nContent-Length: 9\r\nContent-Type: text/html\r\n\r\n<p>hi</p>",
		got)
}

func TestWriteResponseEmptyBody(t *testing.T) {
	got := collectResponse(t, func(conn net.Conn) {
		writeResponse(conn, statusOK, "application/octet-stream", nil)
	})

	assert.Equal(t,
		"HTTP/1.0 200 OK\r\nContent-Length: 0\r\nContent-Type: application/octet-stream\r\n\r\n",
		got)
}

func TestWriteErrorUsesStatusTextAsBody(t *testing.T) {
	got := collectResponse(t, func(conn net.Conn) {
		writeError(conn, statusNotFound)
	})

	assert.Equal(t,
		"HTTP/1.0 404 Not Found\r\nContent-Length: 9\r\nContent-Type: text/plain\r\n\r\nNot Found",
		got)
}
