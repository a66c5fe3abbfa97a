package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config carries the startup parameters for a Server.
type Config struct {
	// Port is the TCP port to listen on. 0 picks an ephemeral port.
	Port int
	// ContentRoot is the directory files are served from. Resolved to an
	// absolute path by Validate.
	ContentRoot string
	// CacheBytes bounds the total payload bytes held by the content cache.
	CacheBytes int64
	// Workers is the fixed size of the worker pool.
	Workers int
	// DefaultDocument is served for the bare "/" path.
	DefaultDocument string

	ReadTimeout    time.Duration
	MaxHeaderBytes int
}

// DefaultConfig returns a Config with usable defaults for a small server.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		ContentRoot:     "www",
		CacheBytes:      50_000_000,
		Workers:         8,
		DefaultDocument: "index.html",
		ReadTimeout:     30 * time.Second,
		MaxHeaderBytes:  8192,
	}
}

// Validate checks every field and resolves ContentRoot to an absolute
// path. The root must exist and be a directory; anything else is a fatal
// startup error.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.CacheBytes <= 0 {
		return fmt.Errorf("%w: cache capacity must be positive, got %d", ErrInvalidConfig, c.CacheBytes)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.DefaultDocument == "" {
		return fmt.Errorf("%w: default document must not be empty", ErrInvalidConfig)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxHeaderBytes <= 0 {
		return fmt.Errorf("%w: max header size must be positive", ErrInvalidConfig)
	}

	root, err := filepath.Abs(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("%w: content root %q: %v", ErrInvalidConfig, c.ContentRoot, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: content root %q: %v", ErrInvalidConfig, c.ContentRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: content root %q is not a directory", ErrInvalidConfig, c.ContentRoot)
	}
	c.ContentRoot = root
	return nil
}
