// statikd serves static files over a one-shot HTTP protocol with an
// in-memory LRU cache of file contents.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/statikd/statikd/server"
)

func main() {
	cfg := server.DefaultConfig()

	flag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "TCP port to listen on")
	flag.StringVarP(&cfg.ContentRoot, "root", "r", cfg.ContentRoot, "directory to serve files from")
	flag.Int64Var(&cfg.CacheBytes, "cache-bytes", cfg.CacheBytes, "max bytes of file content kept in memory")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of request workers")
	flag.StringVar(&cfg.DefaultDocument, "index", cfg.DefaultDocument, "document served for /")
	flag.Parse()

	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "statikd:", err)
		os.Exit(1)
	}
	if err := srv.Listen(); err != nil {
		fmt.Fprintln(os.Stderr, "statikd:", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		srv.Shutdown()
	}()

	if err := srv.Serve(); err != nil {
		fmt.Fprintln(os.Stderr, "statikd:", err)
		os.Exit(1)
	}
}
