package rungen_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	rungen "github.com/LynkerIntel/nh-rungen"
	"github.com/LynkerIntel/nh-rungen/pkg/testsupport"
)

func TestGenerate_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "templates/finetune.yml", `basin: BASINID
seed: SEEDID
run_dir: BASERUNDIR
epochs: EPOCHS
`)
	testsupport.WriteFile(t, dir, "co_basins.txt", "06614800\n09034900\n")
	planPath := testsupport.WriteFile(t, dir, "plan.yml", `run_dir: co_swe_runs
basin_file: co_basins.txt
seeds: ["0", "1"]
templates:
  - {name: finetune, path: templates/finetune.yml}
substitutions:
  EPOCHS: "30"
driver:
  path: finetune_all.sh
  command: "nh-run finetune --config-file {{ config }}"
`)

	outputDir := filepath.Join(dir, "configs")
	result, err := rungen.Generate(testsupport.Context(), planPath, outputDir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wantNames := []string{
		"06614800_finetune_0.yml",
		"06614800_finetune_1.yml",
		"09034900_finetune_0.yml",
		"09034900_finetune_1.yml",
	}
	gotNames := make([]string, 0, len(result.Outputs))
	for _, out := range result.Outputs {
		gotNames = append(gotNames, filepath.Base(out.Path))
	}
	if diff := cmp.Diff(wantNames, gotNames); diff != "" {
		t.Fatalf("output names mismatch (-want +got):\n%s", diff)
	}

	body := testsupport.ReadFile(t, result.Outputs[0].Path)
	want := "basin: 06614800\nseed: 0\nrun_dir: co_swe_runs\nepochs: 30\n"
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("config body mismatch (-want +got):\n%s", diff)
	}

	script := testsupport.ReadFile(t, result.DriverScript)
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	if len(lines) != 1+len(result.Outputs) {
		t.Fatalf("driver script has %d lines, want %d", len(lines), 1+len(result.Outputs))
	}
	for i, out := range result.Outputs {
		if !strings.HasSuffix(lines[i+1], out.Path) {
			t.Fatalf("driver line %d = %q does not reference %q", i+1, lines[i+1], out.Path)
		}
	}
}

func TestGenerate_MissingPlan(t *testing.T) {
	t.Parallel()

	_, err := rungen.Generate(testsupport.Context(), filepath.Join(t.TempDir(), "absent.yml"), "out")
	if err == nil {
		t.Fatal("expected error for missing plan")
	}
}
