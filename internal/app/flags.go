package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Pattern     string
	Soup        int
	Density     float64
	Seed        int64
	Width       int
	Height      int
	Scale       int
	TPS         int
	Speed       int
	Brightness  float64
	GCThreshold int
	TableLog2   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Soup:        256,
		Density:     0.3,
		Seed:        42,
		Width:       960,
		Height:      720,
		Scale:       2,
		TPS:         30,
		Brightness:  1,
		GCThreshold: 1 << 22,
		TableLog2:   16,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "RLE pattern file; a random soup when empty")
	fs.IntVar(&c.Soup, "soup", c.Soup, "side of the random soup")
	fs.Float64Var(&c.Density, "density", c.Density, "fraction of live cells in the random soup")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random soup")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per map pixel")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Speed, "speed", c.Speed, "log2 of generations per tick")
	fs.Float64Var(&c.Brightness, "brightness", c.Brightness, "density multiplier")
	fs.IntVar(&c.GCThreshold, "gc-threshold", c.GCThreshold, "collect garbage above this many nodes (0 disables)")
	fs.IntVar(&c.TableLog2, "table-log2", c.TableLog2, "log2 of the initial node table size")
}
