package server

import (
	"bytes"
	"net"
	"strconv"
)

const protocolVersion = "HTTP/1.0"

type status struct {
	code string
	text string
}

var (
	statusOK               = status{"200", "OK"}
	statusBadRequest       = status{"400", "Bad Request"}
	statusForbidden        = status{"403", "Forbidden"}
	statusNotFound         = status{"404", "Not Found"}
	statusMethodNotAllowed = status{"405", "Method Not Allowed"}
	statusInternalError    = status{"500", "Internal Server Error"}
)

// writeResponse writes one full response: status line, Content-Length,
// Content-Type, blank line, body. Responses are one-shot; the caller
// closes the connection afterwards, so no Connection header is sent.
// Returns the status code for logging.
func writeResponse(conn net.Conn, st status, contentType string, body []byte) string {
	buf := headerBufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	defer func() {
		if buf.Cap() <= maxPoolBufferSize {
			headerBufferPool.Put(buf)
		}
	}()

	buf.WriteString(protocolVersion)
	buf.WriteString(" ")
	buf.WriteString(st.code)
	buf.WriteString(" ")
	buf.WriteString(st.text)
	buf.WriteString("\r\nContent-Length: ")
	buf.WriteString(strconv.Itoa(len(body)))
	buf.WriteString("\r\nContent-Type: ")
	buf.WriteString(contentType)
	buf.WriteString("\r\n\r\n")

	if _, err := conn.Write(buf.Bytes()); err != nil {
		return st.code
	}
	conn.Write(body)
	return st.code
}

// writeError sends a plain-text response whose body is the status text.
func writeError(conn net.Conn, st status) string {
	return writeResponse(conn, st, "text/plain", []byte(st.text))
}
