package driver

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
)

const (
	// DefaultShebang heads every generated driver script.
	DefaultShebang = "#!/bin/bash"

	// DefaultCommandTemplate is the invocation line rendered per generated
	// config file. The context exposes `config`, `basin`, `seed` and
	// `template`.
	DefaultCommandTemplate = "nh-run train --config-file {{ config }}"
)

// ErrScriptWrite reports that the driver script could not be created or
// appended to. Callers match it with errors.Is.
var ErrScriptWrite = errors.New("driver script not writable")

// Invocation carries the per-output values available to the command template.
type Invocation struct {
	// ConfigPath is the path of the generated config file, exposed to the
	// command template as `config`.
	ConfigPath string

	// Basin, Seed and Template identify the combination that produced the
	// config file.
	Basin    string
	Seed     string
	Template string
}

// Option customises the ScriptWriter configuration.
type Option func(*settings)

type settings struct {
	shebang string
	command string
}

// WithShebang overrides the interpreter line written at the top of the script.
func WithShebang(line string) Option {
	return func(s *settings) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return
		}
		s.shebang = trimmed
	}
}

// WithCommandTemplate overrides the per-line invocation template. The template
// is parsed at construction so malformed templates fail before any file is
// touched.
func WithCommandTemplate(tpl string) Option {
	return func(s *settings) {
		trimmed := strings.TrimSpace(tpl)
		if trimmed == "" {
			return
		}
		s.command = trimmed
	}
}

// ScriptWriter owns the driver script lifecycle: truncate and write the
// shebang on Begin, append one invocation line per generated config, mark the
// script executable on Close. Writes are strictly sequential so line order
// mirrors config production order.
type ScriptWriter struct {
	path    string
	shebang string
	command *pongo2.Template
	file    *os.File
	lines   int
}

// NewScriptWriter constructs a writer targeting path. No file is created
// until Begin.
func NewScriptWriter(path string, options ...Option) (*ScriptWriter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("driver: script path is required")
	}

	cfg := &settings{
		shebang: DefaultShebang,
		command: DefaultCommandTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	command, err := pongo2.FromString(cfg.command)
	if err != nil {
		return nil, fmt.Errorf("driver: parse command template: %w", err)
	}

	return &ScriptWriter{
		path:    path,
		shebang: cfg.shebang,
		command: command,
	}, nil
}

// Path returns the script destination.
func (w *ScriptWriter) Path() string {
	return w.path
}

// Begin truncates any prior script content and writes the shebang line.
func (w *ScriptWriter) Begin() error {
	if w.file != nil {
		return errors.New("driver: script already begun")
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return w.wrap("create", err)
	}

	if _, err := file.WriteString(w.shebang + "\n"); err != nil {
		file.Close()
		return w.wrap("write shebang to", err)
	}
	w.file = file
	w.lines = 0
	return nil
}

// Render produces the command line for one invocation without writing it.
func (w *ScriptWriter) Render(inv Invocation) (string, error) {
	line, err := w.command.Execute(pongo2.Context{
		"config":   inv.ConfigPath,
		"basin":    inv.Basin,
		"seed":     inv.Seed,
		"template": inv.Template,
	})
	if err != nil {
		return "", fmt.Errorf("driver: render command line: %w", err)
	}
	return line, nil
}

// Append renders the command template for one invocation, writes it as the
// next script line, and returns the line written.
func (w *ScriptWriter) Append(inv Invocation) (string, error) {
	if w.file == nil {
		return "", errors.New("driver: script not begun")
	}

	line, err := w.Render(inv)
	if err != nil {
		return "", err
	}

	if _, err := w.file.WriteString(line + "\n"); err != nil {
		return "", w.wrap("append to", err)
	}
	w.lines++
	return line, nil
}

// Lines reports how many invocation lines have been appended since Begin.
func (w *ScriptWriter) Lines() int {
	return w.lines
}

// Close flushes the script and marks it executable. Safe to call when Begin
// never ran.
func (w *ScriptWriter) Close() error {
	if w.file == nil {
		return nil
	}
	file := w.file
	w.file = nil

	if err := file.Close(); err != nil {
		return w.wrap("close", err)
	}
	if err := os.Chmod(w.path, 0o755); err != nil {
		return w.wrap("chmod", err)
	}
	return nil
}

// Abort closes the script without marking it executable, leaving whatever
// lines were appended in place. Used on the fail-fast path; files already
// written are never rolled back.
func (w *ScriptWriter) Abort() {
	if w.file == nil {
		return
	}
	file := w.file
	w.file = nil
	file.Close()
}

func (w *ScriptWriter) wrap(action string, err error) error {
	return fmt.Errorf("driver: %s script %s: %w: %v", action, w.path, ErrScriptWrite, err)
}
