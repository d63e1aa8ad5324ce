// mandel renders a region of the Mandelbrot set to an image file.
//
//	mandel [flags] FILE PIXELS UPPERLEFT LOWERRIGHT MODE
//	mandel [flags] -region NAME FILE PIXELS MODE
//
// Example:
//
//	mandel mandel.png 1000x750 -1.20,0.35 -1,0.20 Multi
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	mandel "github.com/marben/mandel"
)

var errUsage = errors.New("usage")

type config struct {
	file   string
	bounds mandel.Bounds
	plane  mandel.Plane
	mode   mandel.Mode
	opts   mandel.Options
	debug  bool
}

func main() {
	cfg, err := parseArgs(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("FATAL: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func parseArgs(prog string, args []string) (config, error) {
	cfg := config{opts: mandel.DefaultOptions()}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.IntVar(&cfg.opts.RowsPerBand, "rows", cfg.opts.RowsPerBand, "pixel rows per band in Multi mode")
	fs.IntVar(&cfg.opts.Workers, "workers", 0, "worker goroutines in Multi mode, 0 for GOMAXPROCS")
	fs.IntVar(&cfg.opts.Limit, "limit", cfg.opts.Limit, "iteration limit per point")
	region := fs.String("region", "", "named region instead of UPPERLEFT LOWERRIGHT: "+strings.Join(mandel.LandmarkNames(), ", "))
	fs.BoolVar(&cfg.debug, "v", false, "log render details")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s FILE PIXELS UPPERLEFT LOWERRIGHT MODE\n", prog)
		fmt.Fprintf(fs.Output(), "Example: %s mandel.png 1000x750 -1.20,0.35 -1,0.20 Multi\n", prog)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	pos := fs.Args()
	var modeArg string
	if *region != "" {
		if len(pos) != 3 {
			fs.Usage()
			return cfg, fmt.Errorf("%w: -region takes FILE PIXELS MODE", errUsage)
		}
		p, ok := mandel.Landmark(*region)
		if !ok {
			return cfg, fmt.Errorf("unknown region %q", *region)
		}
		cfg.plane = p
		modeArg = pos[2]
	} else {
		if len(pos) != 5 {
			fs.Usage()
			return cfg, fmt.Errorf("%w: want 5 arguments, got %d", errUsage, len(pos))
		}
		ul, ok := mandel.ParseComplex(pos[2])
		if !ok {
			return cfg, fmt.Errorf("error parsing upper left corner point %q", pos[2])
		}
		lr, ok := mandel.ParseComplex(pos[3])
		if !ok {
			return cfg, fmt.Errorf("error parsing lower right corner point %q", pos[3])
		}
		cfg.plane = mandel.Plane{UpperLeft: ul, LowerRight: lr}
		modeArg = pos[4]
	}

	cfg.file = pos[0]
	if _, err := mandel.FormatFromPath(cfg.file); err != nil {
		return cfg, fmt.Errorf("output file %q: %w", cfg.file, err)
	}

	b, ok := mandel.ParseBounds(pos[1])
	if !ok {
		return cfg, fmt.Errorf("error parsing image dimensions %q", pos[1])
	}
	cfg.bounds = b

	m, ok := mandel.ParseMode(modeArg)
	if !ok {
		return cfg, fmt.Errorf("error parsing mode %q - can only be 'Single' or 'Multi'", modeArg)
	}
	cfg.mode = m

	return cfg, nil
}

func run(cfg config) error {
	if cfg.debug {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	pm := mandel.NewPixmap(cfg.bounds, cfg.opts.Channels)

	log.Printf("rendering %s of %s in %s mode", cfg.bounds, cfg.plane, cfg.mode)
	start := time.Now()
	cfg.mode.Renderer(cfg.opts).Render(pm, cfg.plane)
	log.Printf("render took %s", time.Since(start))

	if err := mandel.Save(cfg.file, pm); err != nil {
		return fmt.Errorf("save %q: %w", cfg.file, err)
	}
	log.Printf("image saved to %q", cfg.file)
	return nil
}
