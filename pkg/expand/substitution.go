package expand

import (
	"sort"
	"strings"
)

// Default literal tokens substituted per combination. Templates carry these
// as plain text; nothing else in the body is interpreted.
const (
	DefaultBasinPlaceholder = "BASINID"
	DefaultSeedPlaceholder  = "SEEDID"
)

// Placeholders names the literal tokens that receive the per-combination
// basin and seed values. Zero values fall back to the defaults.
type Placeholders struct {
	Basin string
	Seed  string
}

func (p Placeholders) withDefaults() Placeholders {
	if strings.TrimSpace(p.Basin) == "" {
		p.Basin = DefaultBasinPlaceholder
	}
	if strings.TrimSpace(p.Seed) == "" {
		p.Seed = DefaultSeedPlaceholder
	}
	return p
}

// Substitute replaces every occurrence of each key in subs with its value.
// Tokens present in body but absent from subs pass through verbatim; that
// permissive behaviour is part of the contract, not an oversight. Keys are
// applied longest-first so a key that prefixes a longer token never shadows
// it; ties order lexicographically to keep output a pure function of the
// inputs.
func Substitute(body []byte, subs map[string]string) []byte {
	if len(subs) == 0 {
		return append([]byte(nil), body...)
	}

	keys := make([]string, 0, len(subs))
	for key := range subs {
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, subs[key])
	}
	return []byte(strings.NewReplacer(pairs...).Replace(string(body)))
}
