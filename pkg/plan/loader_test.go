package plan_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LynkerIntel/nh-rungen/pkg/plan"
	"github.com/LynkerIntel/nh-rungen/pkg/testsupport"
)

const validPlan = `run_dir: co_swe_runs
basins: ["06614800", "09034900"]
seeds: ["0", "1", "2"]
templates:
  - {name: finetune, path: templates/finetune.yml}
  - {name: train, path: templates/train.yml}
substitutions:
  EPOCHS: "30"
driver:
  path: finetune_all.sh
  command: "nh-run finetune --config-file {{ config }}"
ensemble:
  metrics: [NSE, KGE]
  output_dir: ensembles
  pairs:
    - [runs/a_0, runs/a_1]
`

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "plan.yml", validPlan)

	p, err := plan.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"06614800", "09034900"}, p.Basins); diff != "" {
		t.Fatalf("basins mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0", "1", "2"}, p.Seeds); diff != "" {
		t.Fatalf("seeds mismatch (-want +got):\n%s", diff)
	}
	if p.Driver == nil || p.Driver.Path != "finetune_all.sh" {
		t.Fatalf("driver block not parsed: %+v", p.Driver)
	}
	if p.Ensemble == nil || len(p.Ensemble.Pairs) != 1 {
		t.Fatalf("ensemble block not parsed: %+v", p.Ensemble)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "UnknownField",
			content: "seeds: [\"0\"]\ntemplates: [{name: t, path: t.yml}]\nbasins: [\"a\"]\nbogus: true\n",
			wantErr: "parse",
		},
		{
			name:    "NoSeeds",
			content: "basins: [\"a\"]\ntemplates: [{name: t, path: t.yml}]\n",
			wantErr: "seed list is empty",
		},
		{
			name:    "NoTemplates",
			content: "basins: [\"a\"]\nseeds: [\"0\"]\n",
			wantErr: "no templates",
		},
		{
			name:    "NoBasins",
			content: "seeds: [\"0\"]\ntemplates: [{name: t, path: t.yml}]\n",
			wantErr: "either basins or basin_file",
		},
		{
			name:    "BasinsAndBasinFile",
			content: "basins: [\"a\"]\nbasin_file: b.txt\nseeds: [\"0\"]\ntemplates: [{name: t, path: t.yml}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "DuplicateTemplateName",
			content: "basins: [\"a\"]\nseeds: [\"0\"]\ntemplates: [{name: t, path: a.yml}, {name: t, path: b.yml}]\n",
			wantErr: "duplicate template name",
		},
		{
			name:    "BadEnsemblePair",
			content: "basins: [\"a\"]\nseeds: [\"0\"]\ntemplates: [{name: t, path: t.yml}]\nensemble: {output_dir: e, pairs: [[only_one]]}\n",
			wantErr: "exactly two run dirs",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := testsupport.WriteFile(t, dir, "plan.yml", tc.content)
			_, err := plan.Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestPlan_Request(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "plan.yml", validPlan)
	p, err := plan.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	req := p.Request(dir, "out", []string{"06614800"})

	if len(req.Templates) != 2 || req.Templates[0].Name != "finetune" {
		t.Fatalf("template refs not in declaration order: %+v", req.Templates)
	}
	if req.DriverScript != filepath.Join(dir, "finetune_all.sh") {
		t.Fatalf("driver script = %q", req.DriverScript)
	}
	want := map[string]string{
		"EPOCHS":                      "30",
		plan.DefaultRunDirPlaceholder: "co_swe_runs",
	}
	if diff := cmp.Diff(want, req.Substitutions); diff != "" {
		t.Fatalf("substitutions mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_ResolveEnsemble(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "plan.yml", validPlan)
	p, err := plan.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	spec := p.ResolveEnsemble(dir)
	if spec == nil {
		t.Fatal("ensemble block missing")
	}
	if want := filepath.Join(dir, "ensembles"); spec.OutputDir != want {
		t.Fatalf("output dir = %q, want %q", spec.OutputDir, want)
	}
	wantPairs := [][]string{{filepath.Join(dir, "runs/a_0"), filepath.Join(dir, "runs/a_1")}}
	if diff := cmp.Diff(wantPairs, spec.Pairs); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}

	// The plan itself keeps the paths it was written with.
	if p.Ensemble.OutputDir != "ensembles" {
		t.Fatalf("plan ensemble mutated: %q", p.Ensemble.OutputDir)
	}
}

func TestPlan_ResolveBasinsFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "co_basins.txt", "06614800\n09034900\n")
	path := testsupport.WriteFile(t, dir, "plan.yml", `basin_file: co_basins.txt
seeds: ["0"]
templates:
  - {name: t, path: t.yml}
`)

	p, err := plan.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := p.ResolveBasins(dir)
	if err != nil {
		t.Fatalf("resolve basins: %v", err)
	}
	if diff := cmp.Diff([]string{"06614800", "09034900"}, got); diff != "" {
		t.Fatalf("basins mismatch (-want +got):\n%s", diff)
	}
}
