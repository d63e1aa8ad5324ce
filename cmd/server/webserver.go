package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// webServer binds the listen port and returns the http.Server for handler.
func webServer(port int, handler http.Handler) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%d", port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("net.Listen: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d (render at /render, websocket at /ws)", port)
	return l, srv, nil
}
