// Package basins reads and writes the one-gauge-id-per-line basin list files
// shared with the training tooling, and derives new lists from existing ones.
package basins

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Load reads a basin list file: one gauge id per line, blank lines skipped,
// `#` starts a comment.
func Load(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("basins: path is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("basins: open %s: %w", path, err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("basins: read %s: %w", path, err)
	}
	return ids, nil
}

// Exclude returns all \ remove as a sorted list. Duplicates in all collapse;
// ids in remove that never appear in all are ignored.
func Exclude(all, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		drop[id] = struct{}{}
	}

	kept := make(map[string]struct{}, len(all))
	for _, id := range all {
		if _, excluded := drop[id]; excluded {
			continue
		}
		kept[id] = struct{}{}
	}

	out := make([]string, 0, len(kept))
	for id := range kept {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Write persists ids to path, one per line.
func Write(path string, ids []string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("basins: path is required")
	}

	var builder strings.Builder
	for _, id := range ids {
		builder.WriteString(id)
		builder.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("basins: write %s: %w", path, err)
	}
	return nil
}
