// Command seats runs a seat layout to its fixed point and prints the number of
// occupied seats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"seat-ca/internal/sims/seating"
	"seat-ca/internal/trace"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("seats: ")

	var (
		configPath = flag.String("config", "", "YAML rule file (flags override its values)")
		preset     = flag.String("rule", "immediate", "rule preset: immediate (4, adjacent) or first-visible (5, line of sight)")
		threshold  = flag.Int("threshold", 0, "override the tolerance of the selected rule")
		visibility = flag.String("visibility", "", "override visibility: immediate or first-visible")
		maxGen     = flag.Int("max-gen", 0, "fail if the layout has not settled after this many generations (0 = unbounded)")
		workers    = flag.Int("workers", 0, "goroutines per generation (0 = config value)")
		tracePath  = flag.String("trace", "", "record every generation to this .jsonl.zst file")
		printFinal = flag.Bool("print", false, "print the settled layout")
		verbose    = flag.Bool("v", false, "log each generation")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: seats [flags] [layout-file|-]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := seating.DefaultConfig()
	if *configPath != "" {
		loaded, err := seating.LoadConfig(*configPath)
		if err != nil {
			log.Printf("load config: %v", err)
			os.Exit(2)
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["rule"] || *configPath == "" {
		r, err := seating.PresetRule(*preset)
		if err != nil {
			log.Printf("%v", err)
			os.Exit(2)
		}
		cfg.Rule = r
	}
	if set["threshold"] {
		cfg.Rule.Threshold = *threshold
	}
	if set["visibility"] {
		v, err := seating.ParseVisibility(*visibility)
		if err != nil {
			log.Printf("%v", err)
			os.Exit(2)
		}
		cfg.Rule.Visibility = v
	}
	if set["max-gen"] {
		cfg.MaxGenerations = *maxGen
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Rule.Validate(); err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}

	layout, err := readLayout(flag.Arg(0))
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}
	logger.Debug("layout loaded", "width", layout.Width(), "height", layout.Height(), "seats", layout.Seats(), "rule", cfg.Rule.String())

	opts := cfg.Options()
	var rec *trace.Writer
	if *tracePath != "" {
		rec, err = trace.Create(*tracePath)
		if err != nil {
			log.Printf("create trace: %v", err)
			os.Exit(1)
		}
	}
	rule := cfg.Rule
	var record seating.Observer
	if rec != nil {
		record = rec.Observer(rule)
	}
	opts = append(opts, seating.WithObserver(func(gen int, g *seating.Grid, changed bool) {
		if record != nil {
			record(gen, g, changed)
		}
		logger.Debug("generation", "n", gen, "occupied", g.Count(seating.Occupied))
	}))

	res, runErr := seating.Simulate(layout, rule, opts...)
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Printf("write trace: %v", err)
			os.Exit(1)
		}
		logger.Debug("trace written", "path", *tracePath)
	}
	if runErr != nil {
		if errors.Is(runErr, seating.ErrNonConvergence) {
			logger.Error("layout did not settle", "max_generations", cfg.MaxGenerations)
		}
		log.Printf("%v", runErr)
		os.Exit(1)
	}

	logger.Debug("settled", "generations", res.Generations, "occupied", res.Occupied, "seats", res.Seats)
	if *printFinal {
		fmt.Print(res.Final.String())
	}
	fmt.Println(res.Occupied)
}

func readLayout(path string) (*seating.Grid, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return seating.Read(r)
}
