package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"hashlife/pkg/rle"
	"hashlife/pkg/sims/hashlife"
)

var cmdInfo = &cli.Command{
	Name:      "info",
	Usage:     "describe a pattern and the quadtree built for it",
	ArgsUsage: " ",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "rle",
			Usage: "also print the pattern in canonical RLE form",
		},
	}, patternFlags...),
	Action: runInfo,
}

func runInfo(cctx *cli.Context) error {
	points, err := loadPattern(cctx)
	if err != nil {
		return err
	}
	u := hashlife.FromPoints(points)
	b := u.Bounds()
	fmt.Printf("cells:  %d\n", u.Population())
	fmt.Printf("bounds: %v..%v (%dx%d)\n", b.Min, b.Max, b.Dx(), b.Dy())
	fmt.Printf("depth:  %d (root spans %d cells from %v)\n", u.Depth(), int64(8)<<u.Depth(), u.Offset())
	fmt.Printf("nodes:  %d\n", u.NodeCount())
	if cctx.Bool("rle") {
		return rle.Write(os.Stdout, points)
	}
	return nil
}
