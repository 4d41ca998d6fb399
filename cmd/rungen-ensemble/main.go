package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	rungen "github.com/LynkerIntel/nh-rungen"
	"github.com/LynkerIntel/nh-rungen/pkg/ensemble"
)

func main() {
	planPath := flag.String("plan", "plan.yml", "run plan file with an ensemble block")
	command := flag.String("command", ensemble.DefaultCommand, "results-ensembling tool to invoke")
	dryRun := flag.Bool("dry-run", false, "print the command lines instead of executing them")
	flag.Parse()

	ctx := context.Background()

	p, err := rungen.LoadPlan(*planPath)
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}
	if p.Ensemble == nil {
		log.Fatalf("Plan %s has no ensemble block", *planPath)
	}

	spec := p.ResolveEnsemble(filepath.Dir(*planPath))
	jobs, err := ensemble.PairJobs(spec.Pairs, spec.OutputDir, spec.Metrics)
	if err != nil {
		log.Fatalf("Failed to build ensemble jobs: %v", err)
	}

	invocations := ensemble.Build(*command, jobs)
	if *dryRun {
		for _, inv := range invocations {
			fmt.Println(inv.String())
		}
		return
	}

	if err := ensemble.NewRunner().Run(ctx, invocations); err != nil {
		log.Fatalf("Ensembling failed: %v", err)
	}
	fmt.Printf("Ensembled %d run-dir pairs into %s\n", len(invocations), spec.OutputDir)
}
