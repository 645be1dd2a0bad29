// Command replay re-simulates a recorded seating trace and checks that every
// generation follows from the one before it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"seat-ca/internal/trace"
)

func main() {
	var (
		tracePath = flag.String("trace", "", "path to .jsonl.zst trace written by seats -trace")
		show      = flag.Int("show", -1, "print the layout of this generation")
	)
	flag.Parse()

	if *tracePath == "" {
		fmt.Fprintln(os.Stderr, "missing -trace")
		os.Exit(2)
	}

	frames, err := trace.ReadFile(*tracePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read trace:", err)
		os.Exit(1)
	}
	if len(frames) > 0 {
		first := frames[0]
		fmt.Printf("trace %dx%d rule=%s/%d frames=%d\n", first.Width, first.Height, first.Visibility, first.Threshold, len(frames))
	}

	if *show >= 0 {
		for _, fr := range frames {
			if fr.Generation != *show {
				continue
			}
			fmt.Printf("generation %d (%d occupied)\n", fr.Generation, fr.Occupied)
			for _, row := range fr.Rows {
				fmt.Println(row)
			}
		}
	}

	rep, err := trace.Verify(frames)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify:", err)
		if errors.Is(err, trace.ErrMismatch) {
			os.Exit(3)
		}
		os.Exit(1)
	}

	status := "settled"
	if !rep.FixedPoint {
		status = "not settled (trace ends early)"
	}
	fmt.Printf("verified %d generations under %s: %s, %d occupied\n", rep.Frames-1, rep.Rule, status, rep.Occupied)
}
