package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	mandel "github.com/marben/mandel"
	"github.com/marben/mandel/internal/remote"
)

// main is the entry point for the render server.
// It serves full images over HTTP and streams bands over websocket.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	opts := mandel.DefaultOptions()
	port := flag.Int("port", 8080, "http listen port")
	maxPixels := flag.Int("max-pixels", remote.DefaultMaxPixels, "largest image a request may ask for")
	flag.IntVar(&opts.RowsPerBand, "rows", opts.RowsPerBand, "default pixel rows per band")
	flag.IntVar(&opts.Workers, "workers", 0, "render goroutines per request, 0 for GOMAXPROCS")
	flag.IntVar(&opts.Limit, "limit", opts.Limit, "iteration limit per point")
	debug := flag.Bool("v", false, "log render details")
	flag.Parse()

	if *debug {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	srv := remote.NewServer(opts)
	srv.MaxPixels = *maxPixels

	l, httpServer, err := webServer(*port, srv.Handler())
	if err != nil {
		return fmt.Errorf("webServer: %w", err)
	}

	log.Printf("mandel server waiting for http and websocket connections")
	if err := httpServer.Serve(l); err != nil {
		return fmt.Errorf("httpServer.Serve: %w", err)
	}
	return nil
}
