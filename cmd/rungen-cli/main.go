package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	rungen "github.com/LynkerIntel/nh-rungen"
	"github.com/LynkerIntel/nh-rungen/pkg/basins"
	"github.com/LynkerIntel/nh-rungen/pkg/expand"
	"github.com/LynkerIntel/nh-rungen/pkg/manifest"
)

func main() {
	planPath := flag.String("plan", "plan.yml", "run plan file")
	outputDir := flag.String("output-dir", "configs", "destination directory for generated configs")
	manifestPath := flag.String("manifest", "", "SQLite manifest recording generated runs (optional)")
	yes := flag.Bool("yes", false, "skip the overwrite confirmation prompt")
	listRuns := flag.Bool("list-runs", false, "list manifest entries and exit (requires -manifest)")
	exclude := flag.Bool("exclude", false, "basin list mode: write -from minus -remove to -o")
	fromPath := flag.String("from", "", "basin list to start from (with -exclude)")
	removePath := flag.String("remove", "", "basin list to subtract (with -exclude)")
	outPath := flag.String("o", "", "output basin list path (with -exclude)")
	flag.Parse()

	ctx := context.Background()

	if *exclude {
		runExclude(*fromPath, *removePath, *outPath)
		return
	}

	if *listRuns {
		runListRuns(ctx, *manifestPath)
		return
	}

	if shouldConfirmOverwrite(*yes, isatty.IsTerminal(os.Stdin.Fd()), *outputDir) {
		ok := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%s already contains generated configs; overwrite?", *outputDir),
		}
		if err := survey.AskOne(prompt, &ok); err != nil {
			log.Fatalf("Confirmation failed (use -yes to skip): %v", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return
		}
	}

	var opts []expand.Option
	if *manifestPath != "" {
		m, err := manifest.Open(*manifestPath)
		if err != nil {
			log.Fatalf("Failed to open manifest: %v", err)
		}
		defer m.Close()
		opts = append(opts, expand.WithManifest(m))
	}

	result, err := rungen.Generate(ctx, *planPath, *outputDir, opts...)
	if err != nil {
		log.Fatalf("Failed to generate configs: %v", err)
	}

	fmt.Printf("Generated %d config files in %s\n", len(result.Outputs), *outputDir)
	if result.DriverScript != "" {
		fmt.Printf("Driver script written to %s\n", result.DriverScript)
	}
}

func runExclude(fromPath, removePath, outPath string) {
	if fromPath == "" || removePath == "" || outPath == "" {
		log.Fatalf("-exclude requires -from, -remove and -o")
	}

	all, err := basins.Load(fromPath)
	if err != nil {
		log.Fatalf("Failed to load basin list: %v", err)
	}
	remove, err := basins.Load(removePath)
	if err != nil {
		log.Fatalf("Failed to load exclusion list: %v", err)
	}

	kept := basins.Exclude(all, remove)
	if err := basins.Write(outPath, kept); err != nil {
		log.Fatalf("Failed to write basin list: %v", err)
	}
	fmt.Printf("Wrote %d basins to %s\n", len(kept), outPath)
}

func runListRuns(ctx context.Context, manifestPath string) {
	if manifestPath == "" {
		log.Fatalf("-list-runs requires -manifest")
	}

	m, err := manifest.Open(manifestPath)
	if err != nil {
		log.Fatalf("Failed to open manifest: %v", err)
	}
	defer m.Close()

	entries, err := m.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	for _, entry := range entries {
		fmt.Printf("%s\t%s/%s\t%s\t%s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.Basin, entry.Seed, entry.Template, entry.ConfigPath)
	}
}

// shouldConfirmOverwrite decides whether to prompt before regenerating into a
// directory that already holds configs. Non-interactive stdin (pipes, CI)
// behaves like -yes.
func shouldConfirmOverwrite(yes, interactive bool, dir string) bool {
	if yes || !interactive {
		return false
	}
	return hasGeneratedConfigs(dir)
}

func hasGeneratedConfigs(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+expand.OutputExtension))
	return err == nil && len(matches) > 0
}
