// Command rule-sweep runs one layout under every tolerance and visibility mode
// and reports where each settles.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"seat-ca/internal/sims/seating"
)

type scenarioResult struct {
	rule        seating.Rule
	occupied    int
	generations int
	settled     bool
	elapsed     time.Duration
	err         error
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	maxGen := flag.Int("max-gen", 0, "generation bound per scenario (0 = number of cells)")
	minThreshold := flag.Int("min", 1, "lowest tolerance to try")
	maxThreshold := flag.Int("max", 8, "highest tolerance to try")
	width := flag.Int("w", 64, "random layout width when no file is given")
	height := flag.Int("h", 64, "random layout height when no file is given")
	density := flag.Float64("density", 0.7, "random layout seat density")
	seed := flag.Int64("seed", 42, "random layout seed")
	flag.Parse()

	var layout *seating.Grid
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("open layout: %v", err)
		}
		layout, err = seating.Read(f)
		f.Close()
		if err != nil {
			log.Fatalf("parse layout: %v", err)
		}
	} else {
		layout = seating.RandomLayout(*width, *height, *density, *seed)
	}
	if err := checkSweep(*workers, *minThreshold, *maxThreshold); err != nil {
		log.Fatal(err)
	}
	bound := *maxGen
	if bound <= 0 {
		bound = layout.Len()
	}

	var rules []seating.Rule
	for _, vis := range []seating.Visibility{seating.Immediate, seating.FirstVisible} {
		for th := *minThreshold; th <= *maxThreshold; th++ {
			rules = append(rules, seating.Rule{Threshold: th, Visibility: vis})
		}
	}

	fmt.Printf("Sweeping %d rules over a %dx%d layout with %d seats (%d workers, bound %d)\n",
		len(rules), layout.Width(), layout.Height(), layout.Seats(), *workers, bound)

	jobs := make(chan seating.Rule)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rule := range jobs {
				results <- runScenario(layout, rule, bound)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, rule := range rules {
			jobs <- rule
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].rule.Visibility != all[j].rule.Visibility {
			return all[i].rule.Visibility < all[j].rule.Visibility
		}
		return all[i].rule.Threshold < all[j].rule.Threshold
	})

	fmt.Printf("\n%-16s %9s %12s %10s\n", "rule", "occupied", "generations", "elapsed")
	for _, res := range all {
		switch {
		case res.settled:
			fmt.Printf("%-16s %9d %12d %10s\n", res.rule, res.occupied, res.generations, res.elapsed.Round(time.Microsecond))
		case errors.Is(res.err, seating.ErrNonConvergence):
			fmt.Printf("%-16s %9s %12s %10s\n", res.rule, "-", fmt.Sprintf(">%d", bound), res.elapsed.Round(time.Microsecond))
		default:
			fmt.Printf("%-16s error: %v\n", res.rule, res.err)
		}
	}
	fmt.Printf("\nelapsed %s\n", time.Since(start).Round(time.Millisecond))
}

func runScenario(layout *seating.Grid, rule seating.Rule, bound int) scenarioResult {
	start := time.Now()
	res, err := seating.Simulate(layout, rule, seating.WithMaxGenerations(bound))
	out := scenarioResult{rule: rule, elapsed: time.Since(start), err: err}
	if err == nil {
		out.settled = true
		out.occupied = res.Occupied
		out.generations = res.Generations
	}
	return out
}

func checkSweep(workers, minThreshold, maxThreshold int) error {
	if workers < 1 {
		return fmt.Errorf("-workers must be at least 1, got %d", workers)
	}
	if minThreshold < 1 || maxThreshold < minThreshold {
		return fmt.Errorf("invalid tolerance range [%d, %d]", minThreshold, maxThreshold)
	}
	return nil
}
