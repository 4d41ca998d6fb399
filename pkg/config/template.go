package config

import (
	"errors"
)

// Source identifies where a template file originated so loaders can operate
// on plain paths or fs.FS entries without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Template wraps a raw config template and its origin. The body is plain text
// carrying literal placeholder tokens; no template syntax is interpreted at
// this layer.
type Template struct {
	name   string
	source Source
	raw    []byte
}

// NewTemplate constructs a Template wrapper while validating the inputs.
func NewTemplate(name string, src Source, raw []byte) (Template, error) {
	if name == "" {
		return Template{}, errors.New("config: template name is required")
	}
	if src == nil {
		return Template{}, errors.New("config: source is required")
	}
	if len(raw) == 0 {
		return Template{}, errors.New("config: template body is empty")
	}

	clone := append([]byte(nil), raw...)
	return Template{name: name, source: src, raw: clone}, nil
}

// MustNewTemplate panics if the template cannot be created. Useful for tests.
func MustNewTemplate(name string, src Source, raw []byte) Template {
	tpl, err := NewTemplate(name, src, raw)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Name returns the logical template name used in output file naming.
func (t Template) Name() string {
	return t.name
}

// Source returns the origin metadata for the template.
func (t Template) Source() Source {
	return t.source
}

// Raw returns a defensive copy of the template body.
func (t Template) Raw() []byte {
	return append([]byte(nil), t.raw...)
}

// Location returns the string identifier for the origin.
func (t Template) Location() string {
	if t.source == nil {
		return ""
	}
	return t.source.Location()
}
