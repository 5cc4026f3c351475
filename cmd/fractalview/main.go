// Command fractalview opens an interactive Mandelbrot viewer.
//
// Drag with the left button to pan, scroll to zoom about the cursor.
// Space toggles animation, Up/Down and PageUp/PageDown change the iteration
// cap.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/backend"
	_ "github.com/gogpu/fractal/integration/ebitenview"
	_ "github.com/gogpu/fractal/integration/gogpuview"
)

func main() {
	def := fractal.DefaultConfig()
	var (
		host       = flag.String("backend", "", "host to run ("+strings.Join(backend.Available(), ", ")+"); empty picks the best available")
		width      = flag.Int("width", def.Width, "window width")
		height     = flag.Int("height", def.Height, "window height")
		iterations = flag.Int("iterations", def.MaxIterations, "initial iteration cap")
		animated   = flag.Bool("animated", def.Animated, "animate the palette")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := def.
		WithSize(*width, *height).
		WithMaxIterations(*iterations).
		WithAnimated(*animated)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if err := backend.Run(*host, cfg); err != nil {
		log.Fatalf("fractalview: %v", err)
	}
}
