package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/LynkerIntel/nh-rungen/pkg/expand"
	"github.com/LynkerIntel/nh-rungen/pkg/manifest"
	"github.com/LynkerIntel/nh-rungen/pkg/testsupport"
)

func TestManifest_RecordAndList(t *testing.T) {
	t.Parallel()

	ctx := testsupport.Context()
	m, err := manifest.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer m.Close()

	records := []expand.RunRecord{
		{Basin: "06614800", Seed: "0", Template: "finetune", ConfigPath: "out/06614800_finetune_0.yml", DriverLine: "nh-run finetune --config-file out/06614800_finetune_0.yml"},
		{Basin: "06614800", Seed: "1", Template: "finetune", ConfigPath: "out/06614800_finetune_1.yml"},
	}
	for _, rec := range records {
		if err := m.Record(ctx, rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].ConfigPath != records[1].ConfigPath {
		t.Fatalf("entries not newest-first: %+v", entries)
	}
	if entries[1].DriverLine != records[0].DriverLine {
		t.Fatalf("driver line not persisted: %+v", entries[1])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("created_at not recorded")
	}
}

func TestOpen_ReusesExistingDatabase(t *testing.T) {
	t.Parallel()

	ctx := testsupport.Context()
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := manifest.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Record(ctx, expand.RunRecord{Basin: "a", Seed: "0", Template: "t", ConfigPath: "a_t_0.yml"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := manifest.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	entries, err := second.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries after reopen, want 1", len(entries))
	}
}
