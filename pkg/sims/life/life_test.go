package life

import (
	"testing"

	"hashlife/pkg/core"
)

func TestBlinkerOscillation(t *testing.T) {
	life := New([]core.Point{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}})

	life.Step(1)

	expects := map[core.Point]bool{
		{X: 1, Y: 2}: true,
		{X: 2, Y: 2}: true,
		{X: 3, Y: 2}: true,
	}

	for y := int64(-1); y < 6; y++ {
		for x := int64(-1); x < 6; x++ {
			p := core.Point{X: x, Y: y}
			alive := life.Alive(p)
			if expects[p] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, expects[p])
			}
		}
	}

	life.Step(1)

	expects = map[core.Point]bool{
		{X: 2, Y: 1}: true,
		{X: 2, Y: 2}: true,
		{X: 2, Y: 3}: true,
	}

	for y := int64(-1); y < 6; y++ {
		for x := int64(-1); x < 6; x++ {
			p := core.Point{X: x, Y: y}
			alive := life.Alive(p)
			if expects[p] != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, expects[p])
			}
		}
	}
	if got := life.Generation(); got != 2 {
		t.Fatalf("generation = %d, expected 2", got)
	}
}

func TestGliderTranslates(t *testing.T) {
	glider := []core.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	life := New(glider)
	life.Step(4)

	if life.Population() != 5 {
		t.Fatalf("population = %d, expected 5", life.Population())
	}
	for _, p := range glider {
		moved := p.Add(core.Point{X: 1, Y: 1})
		if !life.Alive(moved) {
			t.Fatalf("expected %v alive after one glider period", moved)
		}
	}
}
