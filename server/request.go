package server

import (
	"bytes"
	"errors"
	"net"
	"time"
)

var (
	errHeadersTooLarge  = errors.New("request headers too large")
	errMalformedRequest = errors.New("malformed request line")
)

var headerTerminator = []byte("\r\n\r\n")

// readRequest reads from conn until the header terminator arrives, the
// header limit is exceeded or the read deadline fires. The returned slice
// is a private copy, safe to keep after the scratch buffers go back to
// their pools.
func readRequest(conn net.Conn, readTimeout time.Duration, maxHeaderBytes int) ([]byte, error) {
	bufPtr := requestBufferPool.Get().(*[]byte)
	headerBuffer := (*bufPtr)[:0]

	defer func() {
		if cap(headerBuffer) <= maxPoolBufferSize {
			requestBufferPool.Put(bufPtr)
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if len(headerBuffer) > maxHeaderBytes {
			return nil, errHeadersTooLarge
		}

		chunkPtr := chunkBufferPool.Get().(*[]byte)
		chunk := *chunkPtr

		n, err := conn.Read(chunk)
		if err != nil {
			chunkBufferPool.Put(chunkPtr)
			return nil, err
		}

		headerBuffer = append(headerBuffer, chunk[:n]...)
		chunkBufferPool.Put(chunkPtr)

		if bytes.Contains(headerBuffer, headerTerminator) {
			break
		}
	}

	result := make([]byte, len(headerBuffer))
	copy(result, headerBuffer)
	return result, nil
}

// requestLine is the parsed first line of a request.
type requestLine struct {
	method  string
	path    string
	version string
}

// parseRequestLine extracts METHOD SP PATH SP VERSION from the first line
// of raw request bytes.
func parseRequestLine(raw []byte) (requestLine, error) {
	end := bytes.IndexByte(raw, '\r')
	if end < 0 {
		end = len(raw)
	}
	parts := bytes.Split(raw[:end], []byte(" "))
	if len(parts) < 3 {
		return requestLine{}, errMalformedRequest
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return requestLine{}, errMalformedRequest
	}
	return requestLine{
		method:  string(parts[0]),
		path:    string(parts[1]),
		version: string(parts[2]),
	}, nil
}
