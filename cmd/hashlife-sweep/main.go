// Command hashlife-sweep times the engines over a grid of random soups and
// step counts, one universe per worker.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"log"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"hashlife/pkg/core"
	_ "hashlife/pkg/sims/hashlife"
	_ "hashlife/pkg/sims/life"
)

type scenario struct {
	engine  string
	side    int
	density float64
	seed    int64
	steps   uint64
}

func (s scenario) String() string {
	return fmt.Sprintf("engine=%s soup=%dx%d density=%.2f seed=%d steps=%d", s.engine, s.side, s.side, s.density, s.seed, s.steps)
}

type scenarioResult struct {
	scenario   scenario
	population uint64
	elapsed    time.Duration
}

func main() {
	engines := flag.String("engines", "hashlife", "comma separated engines to time")
	sides := flag.String("sides", "64,128,256", "comma separated soup sides")
	steps := flag.String("steps", "256,4096,65536", "comma separated generation counts")
	seeds := flag.Int("seeds", 3, "soups per size")
	density := flag.Float64("density", 0.3, "fraction of live cells in each soup")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	sideList, err := parseList[int](*sides)
	if err != nil {
		log.Fatalf("-sides: %v", err)
	}
	stepList, err := parseList[uint64](*steps)
	if err != nil {
		log.Fatalf("-steps: %v", err)
	}
	var sets []scenario
	for _, engine := range strings.Split(*engines, ",") {
		if _, ok := core.Engines()[engine]; !ok {
			log.Fatalf("unknown engine %q", engine)
		}
		for _, side := range sideList {
			for seed := 1; seed <= *seeds; seed++ {
				for _, n := range stepList {
					sets = append(sets, scenario{engine: engine, side: side, density: *density, seed: int64(seed), steps: n})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers)\n", len(sets), *workers)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(s)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	slices.SortFunc(all, func(a, b scenarioResult) int { return cmp.Compare(b.elapsed, a.elapsed) })
	for _, res := range all {
		fmt.Printf("%10s  population=%-8d %s\n", res.elapsed.Round(time.Microsecond), res.population, res.scenario)
	}
	fmt.Printf("Completed sweep in %s\n", time.Since(start).Round(time.Millisecond))
}

func runScenario(s scenario) scenarioResult {
	points := core.NewRNG(s.seed).Soup(core.Point{}, s.side, s.side, s.density)
	u := core.Engines()[s.engine](nil, points)
	start := time.Now()
	u.Step(s.steps)
	return scenarioResult{scenario: s, population: u.Population(), elapsed: time.Since(start)}
}

func parseList[T int | uint64](s string) ([]T, error) {
	var out []T
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var v T
		if _, err := fmt.Sscan(field, &v); err != nil {
			return nil, fmt.Errorf("bad value %q: %w", field, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
