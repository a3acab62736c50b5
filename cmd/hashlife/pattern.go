package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"hashlife/pkg/core"
	"hashlife/pkg/rle"
)

var patternFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "pattern",
		Aliases: []string{"p"},
		Usage:   "RLE pattern file (\"-\" for stdin); a random soup when empty",
		EnvVars: []string{"HASHLIFE_PATTERN"},
	},
	&cli.IntFlag{
		Name:  "soup",
		Usage: "side of the random soup",
		Value: 128,
	},
	&cli.Float64Flag{
		Name:  "density",
		Usage: "fraction of live cells in the random soup",
		Value: 0.3,
	},
	&cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for the random soup",
		Value: 42,
	},
}

var engineFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "engine",
		Usage:   "simulation engine (hashlife, life)",
		Value:   "hashlife",
		EnvVars: []string{"HASHLIFE_ENGINE"},
	},
	&cli.IntFlag{
		Name:    "gc-threshold",
		Usage:   "collect garbage above this many nodes (0 disables)",
		Value:   1 << 22,
		EnvVars: []string{"HASHLIFE_GC_THRESHOLD"},
	},
	&cli.IntFlag{
		Name:    "table-log2",
		Usage:   "log2 of the initial node table size",
		Value:   16,
		EnvVars: []string{"HASHLIFE_TABLE_LOG2"},
	},
}

// loadPattern reads the pattern named by --pattern, or generates a soup.
func loadPattern(cctx *cli.Context) ([]core.Point, error) {
	path := cctx.String("pattern")
	if path == "" {
		side := cctx.Int("soup")
		if side <= 0 {
			return nil, fmt.Errorf("soup side must be positive, got %d", side)
		}
		return core.NewRNG(cctx.Int64("seed")).Soup(core.Point{}, side, side, cctx.Float64("density")), nil
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	points, err := rle.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("reading pattern %s: %w", path, err)
	}
	return points, nil
}

// engineConfig turns the engine flags into a factory configuration map.
func engineConfig(cctx *cli.Context) map[string]string {
	return map[string]string{
		"gc_threshold": fmt.Sprint(cctx.Int("gc-threshold")),
		"table_log2":   fmt.Sprint(cctx.Int("table-log2")),
	}
}

func newEngine(cctx *cli.Context, points []core.Point) (core.Universe, error) {
	name := cctx.String("engine")
	factory, ok := core.Engines()[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return factory(engineConfig(cctx), points), nil
}
