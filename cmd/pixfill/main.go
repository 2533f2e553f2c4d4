package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/esimov/pixfill"
	"github.com/esimov/pixfill/utils"
)

const HelpBanner = `
┌─┐┬─┐ ┬┌─┐┬┬  ┬
├─┘│┌┴┬┘├┤ ││  │
┴  ┴┴ └─└  ┴┴─┘┴─┘

Flood fill (paint bucket) tool for raster images.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(utils.Decoratef(utils.ErrorMessage, "Invalid environment configuration: %v", err))
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	var (
		source      = flag.String("in", pipeName, "Source")
		destination = flag.String("out", pipeName, "Destination")
		seedX       = flag.Int("x", 0, "X coordinate of the fill seed")
		seedY       = flag.Int("y", 0, "Y coordinate of the fill seed")
		fillColor   = flag.String("color", cfg.Color, "Fill color (#RRGGBB)")
		script      = flag.String("script", "", "Paint script replayed over the image")
		undoLimit   = flag.Int("undo", cfg.UndoLimit, "Number of undo snapshots kept while painting")
		workers     = flag.Int("conc", cfg.Workers, "Number of files to process concurrently")
		debug       = flag.Bool("debug", false, "Log the painting steps")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		pixfill.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	proc := &pixfill.Processor{
		X:          *seedX,
		Y:          *seedY,
		FillColor:  *fillColor,
		ScriptPath: *script,
		UndoLimit:  *undoLimit,
	}

	op := &pixfill.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("\nError painting the image:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}
