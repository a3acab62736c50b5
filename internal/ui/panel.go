// Package ui draws the viewer's side panel.
package ui

import (
	"strconv"
)

// Stat is one read-only line of the panel.
type Stat struct {
	Label string
	Value string
}

// Control is an adjustable panel entry drawn with -/+ buttons.
type Control struct {
	Key   string
	Label string
}

// Source feeds the panel with statistics and adjustable controls.
type Source interface {
	Name() string
	Stats() []Stat
	Controls() []Control
	ControlValue(key string) string
	CanAdjust(key string, direction int) bool
	Adjust(key string, direction int) bool
}

const countUnits = "kMGTPE"

// FormatCount renders n exactly below 10000 and with three significant
// digits and a metric suffix above.
func FormatCount(n uint64) string {
	if n < 10000 {
		return strconv.FormatUint(n, 10)
	}
	v := float64(n)
	unit := -1
	for v >= 1000 && unit < len(countUnits)-1 {
		v /= 1000
		unit++
	}
	precision := 0
	switch {
	case v < 10:
		precision = 2
	case v < 100:
		precision = 1
	}
	return strconv.FormatFloat(v, 'f', precision, 64) + countUnits[unit:unit+1]
}
