package main

import (
	"context"
	"fmt"
	"os"

	"nescore/emu"
	"nescore/hw/cputest"
)

// verifyMain runs all the processor test files of a directory and prints a
// summary.
func verifyMain(args Verify, cfg emu.Config) {
	jobs := cfg.Verify.Jobs
	if args.Jobs > 0 {
		jobs = args.Jobs
	}

	reports, err := cputest.RunDir(context.Background(), args.Dir, jobs)
	checkf(err, "failed to run test files")

	var total, failed, skipped int
	for _, r := range reports {
		fmt.Println(r)
		for _, err := range r.Errors {
			fmt.Printf("\t%v\n", err)
		}
		total += r.Total
		failed += r.Failed
		if r.Skipped {
			skipped++
		}
	}

	fmt.Printf("\n%d cases, %d failed, %d files skipped\n", total, failed, skipped)
	if failed != 0 {
		os.Exit(1)
	}
}
