package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"hashlife/internal/app"
	"hashlife/internal/render"
	"hashlife/pkg/sims/hashlife"
)

var cmdRender = &cli.Command{
	Name:      "render",
	Usage:     "write density maps of a pattern as PNG frames",
	ArgsUsage: "<output.png | output-dir>",
	Flags: append(append([]cli.Flag{
		&cli.Uint64Flag{
			Name:  "steps",
			Usage: "generations to advance before the first frame",
		},
		&cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames; more than one writes frame-NNNN.png into a directory",
			Value: 1,
		},
		&cli.Uint64Flag{
			Name:  "every",
			Usage: "generations between frames",
			Value: 64,
		},
		&cli.IntFlag{
			Name:  "width",
			Value: 512,
		},
		&cli.IntFlag{
			Name:  "height",
			Value: 512,
		},
		&cli.IntFlag{
			Name:  "zoom",
			Usage: "log2 of cells per pixel side; fitted to the pattern when negative",
			Value: -1,
		},
		&cli.Float64Flag{
			Name:  "brightness",
			Usage: "density multiplier",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "write RGBA frames instead of grayscale",
		},
	}, patternFlags...), engineFlags[1:]...),
	Action: runRender,
}

func runRender(cctx *cli.Context) error {
	out := cctx.Args().First()
	if out == "" {
		return fmt.Errorf("need to provide an output path")
	}
	frames := cctx.Int("frames")
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}
	log := slog.Default().With("system", "hashlife-render")

	points, err := loadPattern(cctx)
	if err != nil {
		return err
	}
	u := hashlife.FromPoints(points, hashlife.WithConfig(hashlife.FromMap(engineConfig(cctx))), hashlife.WithLogger(log))
	u.Step(cctx.Uint64("steps"))

	view := app.View{W: cctx.Int("width"), H: cctx.Int("height")}
	if view.W <= 0 || view.H <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", view.W, view.H)
	}
	view.Fit(u.Bounds())
	if z := cctx.Int("zoom"); z >= 0 {
		view.ZoomBy(z - int(view.Zoom))
	}

	var ramp *render.Ramp
	if cctx.Bool("color") {
		ramp = app.DefaultRamp()
	}

	if frames > 1 {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
	}
	for i := 0; i < frames; i++ {
		if i > 0 {
			u.Step(cctx.Uint64("every"))
		}
		path := out
		if frames > 1 {
			path = filepath.Join(out, fmt.Sprintf("frame-%04d.png", i))
		}
		cells := u.GrayscaleMap(view.Offset, view.W, view.H, view.Zoom, cctx.Float64("brightness"))
		if err := writeFrame(path, cells, view.W, view.H, ramp); err != nil {
			return err
		}
		log.Info("wrote frame", "path", path, "generation", u.Generation(), "population", u.Population(), "zoom", view.Zoom)
	}
	return nil
}

func writeFrame(path string, cells []byte, w, h int, ramp *render.Ramp) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, cells, w, h, ramp); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
