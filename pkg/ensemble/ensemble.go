// Package ensemble builds and executes invocations of the external
// results-ensembling tool over pairs of run directories. The tool itself is
// an external collaborator; nothing here interprets its results.
package ensemble

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultCommand is the external tool invoked per run-directory pair.
const DefaultCommand = "nh-results-ensemble"

// Job is one ensembling unit: two run directories merged into a save
// directory for a list of metrics.
type Job struct {
	RunDirs [2]string
	SaveDir string
	Metrics []string
}

// Invocation is a fully resolved command line.
type Invocation struct {
	Path string
	Args []string
}

// String renders the invocation the way a shell would see it, for dry runs
// and logs.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Path}, inv.Args...), " ")
}

// PairJobs derives one Job per run-directory pair. Each pair saves into a
// subdirectory of outputDir named after the two run directory base names.
func PairJobs(pairs [][]string, outputDir string, metrics []string) ([]Job, error) {
	if len(pairs) == 0 {
		return nil, errors.New("ensemble: no run-dir pairs")
	}
	if strings.TrimSpace(outputDir) == "" {
		return nil, errors.New("ensemble: output dir is required")
	}

	jobs := make([]Job, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("ensemble: pair %d must list exactly two run dirs", i)
		}
		a, b := strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("ensemble: pair %d has an empty run dir", i)
		}
		jobs = append(jobs, Job{
			RunDirs: [2]string{a, b},
			SaveDir: filepath.Join(outputDir, filepath.Base(a)+"__"+filepath.Base(b)),
			Metrics: append([]string(nil), metrics...),
		})
	}
	return jobs, nil
}

// Build resolves jobs into command lines for the named tool, in job order.
func Build(command string, jobs []Job) []Invocation {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}

	invocations := make([]Invocation, 0, len(jobs))
	for _, job := range jobs {
		args := []string{"--run-dirs", job.RunDirs[0], job.RunDirs[1], "--save-dir", job.SaveDir}
		if len(job.Metrics) > 0 {
			args = append(args, "--metrics")
			args = append(args, job.Metrics...)
		}
		invocations = append(invocations, Invocation{Path: command, Args: args})
	}
	return invocations
}
