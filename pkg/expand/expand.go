package expand

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LynkerIntel/nh-rungen/pkg/config"
	"github.com/LynkerIntel/nh-rungen/pkg/driver"
)

// OutputExtension is fixed by convention; downstream tooling locates
// generated configs by it.
const OutputExtension = ".yml"

// Option customises the expander configuration.
type Option func(*Expander)

// WithLoader injects a custom template loader.
func WithLoader(loader config.Loader) Option {
	return func(e *Expander) {
		e.loader = loader
	}
}

// WithFS supplies an fs.FS consulted by the default loader for fs-kind
// template sources.
func WithFS(fsys fs.FS) Option {
	return func(e *Expander) {
		e.fsys = fsys
	}
}

// WithManifest registers a manifest that receives one record per generated
// config file.
func WithManifest(m Manifest) Option {
	return func(e *Expander) {
		e.manifest = m
	}
}

// WithShebang overrides the driver script interpreter line.
func WithShebang(line string) Option {
	return func(e *Expander) {
		e.scriptOptions = append(e.scriptOptions, driver.WithShebang(line))
	}
}

// WithCommandTemplate overrides the driver script invocation-line template.
func WithCommandTemplate(tpl string) Option {
	return func(e *Expander) {
		e.scriptOptions = append(e.scriptOptions, driver.WithCommandTemplate(tpl))
	}
}

// Manifest records generated configs. pkg/manifest provides the SQLite-backed
// implementation; the expander only needs this seam.
type Manifest interface {
	Record(ctx context.Context, rec RunRecord) error
}

// RunRecord describes one generated config file.
type RunRecord struct {
	Basin      string
	Seed       string
	Template   string
	ConfigPath string
	DriverLine string
}

// TemplateRef pairs a logical template name with its source. Declaration
// order is the order templates expand within each (basin, seed) combination.
type TemplateRef struct {
	Name   string
	Source config.Source
}

// Request describes one expansion run.
type Request struct {
	// Templates to expand, in declaration order. Required, names must be
	// unique within a request.
	Templates []TemplateRef

	// Basins is the primary identifier list (outer loop). Required.
	// Duplicates are not rejected; a duplicate pair overwrites its earlier
	// output (last write wins).
	Basins []string

	// Seeds is the secondary identifier list (inner loop). Required.
	Seeds []string

	// Substitutions holds fixed per-run token/value pairs merged into every
	// combination, e.g. the base run directory token.
	Substitutions map[string]string

	// Placeholders configures the basin and seed tokens. Zero value uses the
	// defaults.
	Placeholders Placeholders

	// OutputDir receives the generated files; created if absent.
	OutputDir string

	// DriverScript, when non-empty, is the path of the script that collects
	// one invocation line per generated file.
	DriverScript string
}

// OutputFile identifies one generated config and the combination that
// produced it.
type OutputFile struct {
	Path     string
	Basin    string
	Seed     string
	Template string
}

// Result reports what an expansion produced, in production order.
type Result struct {
	Outputs      []OutputFile
	DriverScript string
}

// Expander coordinates the template loading, cartesian substitution, output
// writing and driver script stages. It applies sensible defaults (filesystem
// loader, no manifest) while remaining open to dependency injection.
type Expander struct {
	loader        config.Loader
	fsys          fs.FS
	manifest      Manifest
	scriptOptions []driver.Option
}

// New constructs an Expander applying any provided options.
func New(options ...Option) *Expander {
	e := &Expander{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Expand produces one output file per (basin, seed, template) combination:
// basins form the outer loop, seeds the inner, templates expand in
// declaration order within each pair. Execution is sequential and fail-fast;
// files written before a failure remain on disk.
func (e *Expander) Expand(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("expand: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	loader := e.loader
	if loader == nil {
		loader = newDefaultLoader(e.fsys)
	}

	templates, err := loadTemplates(ctx, loader, req.Templates)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("expand: create output dir %s: %w: %v", req.OutputDir, ErrOutputWrite, err)
	}

	var script *driver.ScriptWriter
	if req.DriverScript != "" {
		script, err = driver.NewScriptWriter(req.DriverScript, e.scriptOptions...)
		if err != nil {
			return Result{}, err
		}
		defer script.Abort()
		if err := script.Begin(); err != nil {
			return Result{}, err
		}
	}

	placeholders := req.Placeholders.withDefaults()
	result := Result{Outputs: make([]OutputFile, 0, len(req.Basins)*len(req.Seeds)*len(templates))}

	for _, basin := range req.Basins {
		for _, seed := range req.Seeds {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			for _, tpl := range templates {
				output, err := e.expandOne(ctx, tpl, basin, seed, placeholders, req, script)
				if err != nil {
					return result, err
				}
				result.Outputs = append(result.Outputs, output)
			}
		}
	}

	if script != nil {
		if err := script.Close(); err != nil {
			return result, err
		}
		result.DriverScript = script.Path()
	}
	return result, nil
}

func (e *Expander) expandOne(ctx context.Context, tpl config.Template, basin, seed string, placeholders Placeholders, req Request, script *driver.ScriptWriter) (OutputFile, error) {
	subs := make(map[string]string, len(req.Substitutions)+2)
	for key, value := range req.Substitutions {
		subs[key] = value
	}
	subs[placeholders.Basin] = basin
	subs[placeholders.Seed] = seed

	body := Substitute(tpl.Raw(), subs)
	name := OutputName(basin, tpl.Name(), seed)
	path := filepath.Join(req.OutputDir, name)

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return OutputFile{}, fmt.Errorf("expand: write %s: %w: %v", path, ErrOutputWrite, err)
	}

	var line string
	if script != nil {
		written, err := script.Append(driver.Invocation{
			ConfigPath: path,
			Basin:      basin,
			Seed:       seed,
			Template:   tpl.Name(),
		})
		if err != nil {
			return OutputFile{}, err
		}
		line = written
	}

	if e.manifest != nil {
		rec := RunRecord{
			Basin:      basin,
			Seed:       seed,
			Template:   tpl.Name(),
			ConfigPath: path,
			DriverLine: line,
		}
		if err := e.manifest.Record(ctx, rec); err != nil {
			return OutputFile{}, fmt.Errorf("expand: record run: %w", err)
		}
	}

	return OutputFile{Path: path, Basin: basin, Seed: seed, Template: tpl.Name()}, nil
}

// OutputName builds the fixed `{basin}_{template}_{seed}.yml` file name.
func OutputName(basin, template, seed string) string {
	return basin + "_" + template + "_" + seed + OutputExtension
}

func validateRequest(req Request) error {
	if len(req.Templates) == 0 {
		return errors.New("expand: at least one template is required")
	}
	if len(req.Basins) == 0 {
		return errors.New("expand: basin list is empty")
	}
	if len(req.Seeds) == 0 {
		return errors.New("expand: seed list is empty")
	}
	if req.OutputDir == "" {
		return errors.New("expand: output dir is required")
	}

	seen := make(map[string]struct{}, len(req.Templates))
	for _, ref := range req.Templates {
		if ref.Name == "" {
			return errors.New("expand: template name is required")
		}
		if ref.Source == nil {
			return fmt.Errorf("expand: template %q has no source", ref.Name)
		}
		if _, dup := seen[ref.Name]; dup {
			return fmt.Errorf("expand: duplicate template name %q", ref.Name)
		}
		seen[ref.Name] = struct{}{}
	}
	return nil
}

func loadTemplates(ctx context.Context, loader config.Loader, refs []TemplateRef) ([]config.Template, error) {
	templates := make([]config.Template, 0, len(refs))
	for _, ref := range refs {
		tpl, err := loader.Load(ctx, ref.Name, ref.Source)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}
