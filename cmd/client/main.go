// client is a CLI client for the mandel render server.
// It requests a render over websocket, assembles the streamed bands, and
// saves the image to a file.
//
//	client [flags] FILE PIXELS UPPERLEFT LOWERRIGHT
//	client [flags] -region NAME FILE PIXELS
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	mandel "github.com/marben/mandel"
	"github.com/marben/mandel/internal/remote"
)

func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	url := flag.String("url", "ws://localhost:8080/ws", "websocket endpoint of the render server")
	region := flag.String("region", "", "named region instead of UPPERLEFT LOWERRIGHT: "+strings.Join(mandel.LandmarkNames(), ", "))
	rows := flag.Int("rows", 0, "pixel rows per band, 0 for the server default")
	timeout := flag.Duration("timeout", 5*time.Minute, "give up after this long")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s FILE PIXELS UPPERLEFT LOWERRIGHT\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	req, file, err := buildRequest(flag.Args(), *region)
	if err != nil {
		flag.Usage()
		return err
	}
	req.RowsPerBand = *rows
	if _, err := mandel.FormatFromPath(file); err != nil {
		return fmt.Errorf("output file %q: %w", file, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Step 1: Request the render and collect the bands as they finish
	log.Printf("Requesting %dx%d render from %s...", req.Width, req.Height, *url)
	done := 0
	pm, err := remote.Fetch(ctx, *url, req, func(top, n int) {
		done += n
		log.Printf("band at row %d received, %d/%d rows", top, done, req.Height)
	})
	if err != nil {
		return fmt.Errorf("remote.Fetch: %w", err)
	}

	// Step 2: Save the assembled image
	log.Printf("Saving rendered image to %q...", file)
	if err := mandel.Save(file, pm); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	log.Printf("Fully rendered image saved to %q", file)
	return nil
}

func buildRequest(args []string, region string) (mandel.RenderRequest, string, error) {
	var req mandel.RenderRequest

	want := 4
	if region != "" {
		want = 2
	}
	if len(args) != want {
		return req, "", fmt.Errorf("want %d arguments, got %d", want, len(args))
	}

	b, ok := mandel.ParseBounds(args[1])
	if !ok {
		return req, "", fmt.Errorf("error parsing image dimensions %q", args[1])
	}
	req.Width, req.Height = b.Width, b.Height

	if region != "" {
		if _, ok := mandel.Landmark(region); !ok {
			return req, "", fmt.Errorf("unknown region %q", region)
		}
		req.Region = region
		return req, args[0], nil
	}

	ul, ok := mandel.ParseComplex(args[2])
	if !ok {
		return req, "", fmt.Errorf("error parsing upper left corner point %q", args[2])
	}
	lr, ok := mandel.ParseComplex(args[3])
	if !ok {
		return req, "", fmt.Errorf("error parsing lower right corner point %q", args[3])
	}
	req.UpperLeft = [2]float64{real(ul), imag(ul)}
	req.LowerRight = [2]float64{real(lr), imag(lr)}
	return req, args[0], nil
}
