package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LynkerIntel/nh-rungen/pkg/basins"
	"github.com/LynkerIntel/nh-rungen/pkg/config"
	"github.com/LynkerIntel/nh-rungen/pkg/expand"
)

// Load reads, decodes and validates a plan file. Template and basin-file
// paths inside the plan stay relative to the plan's directory; Request and
// ResolveBasins resolve them.
func Load(path string) (*Plan, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("plan: path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var p Plan
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("plan: parse %s: %w", path, err)
	}

	p.normalize()
	if err := p.validate(path); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) normalize() {
	p.RunDir = strings.TrimSpace(p.RunDir)
	p.BasinFile = strings.TrimSpace(p.BasinFile)
	p.Basins = trimAll(p.Basins)
	p.Seeds = trimAll(p.Seeds)
	for i := range p.Templates {
		p.Templates[i].Name = strings.TrimSpace(p.Templates[i].Name)
		p.Templates[i].Path = strings.TrimSpace(p.Templates[i].Path)
	}
}

func (p *Plan) validate(path string) error {
	if len(p.Seeds) == 0 {
		return fmt.Errorf("plan: %s: seed list is empty", path)
	}
	if len(p.Templates) == 0 {
		return fmt.Errorf("plan: %s: no templates declared", path)
	}
	if len(p.Basins) == 0 && p.BasinFile == "" {
		return fmt.Errorf("plan: %s: either basins or basin_file is required", path)
	}
	if len(p.Basins) > 0 && p.BasinFile != "" {
		return fmt.Errorf("plan: %s: basins and basin_file are mutually exclusive", path)
	}

	seen := make(map[string]struct{}, len(p.Templates))
	for _, tpl := range p.Templates {
		if tpl.Name == "" {
			return fmt.Errorf("plan: %s: template with empty name", path)
		}
		if tpl.Path == "" {
			return fmt.Errorf("plan: %s: template %q has no path", path, tpl.Name)
		}
		if _, dup := seen[tpl.Name]; dup {
			return fmt.Errorf("plan: %s: duplicate template name %q", path, tpl.Name)
		}
		seen[tpl.Name] = struct{}{}
	}

	if p.Ensemble != nil {
		for i, pair := range p.Ensemble.Pairs {
			if len(pair) != 2 {
				return fmt.Errorf("plan: %s: ensemble pair %d must list exactly two run dirs", path, i)
			}
		}
	}
	return nil
}

// ResolveBasins returns the basin list, reading BasinFile relative to
// baseDir when the plan references one.
func (p *Plan) ResolveBasins(baseDir string) ([]string, error) {
	if p.BasinFile == "" {
		return append([]string(nil), p.Basins...), nil
	}
	return basins.Load(resolvePath(baseDir, p.BasinFile))
}

// Request assembles the expand.Request for this plan. baseDir anchors the
// plan's relative template paths; outputDir receives the generated configs.
func (p *Plan) Request(baseDir, outputDir string, basinIDs []string) expand.Request {
	refs := make([]expand.TemplateRef, 0, len(p.Templates))
	for _, tpl := range p.Templates {
		refs = append(refs, expand.TemplateRef{
			Name:   tpl.Name,
			Source: config.SourceFromFile(resolvePath(baseDir, tpl.Path)),
		})
	}

	subs := make(map[string]string, len(p.Substitutions)+1)
	for key, value := range p.Substitutions {
		subs[key] = value
	}
	if p.RunDir != "" {
		token := strings.TrimSpace(p.Placeholders.RunDir)
		if token == "" {
			token = DefaultRunDirPlaceholder
		}
		subs[token] = p.RunDir
	}

	req := expand.Request{
		Templates:     refs,
		Basins:        basinIDs,
		Seeds:         append([]string(nil), p.Seeds...),
		Substitutions: subs,
		Placeholders: expand.Placeholders{
			Basin: p.Placeholders.Basin,
			Seed:  p.Placeholders.Seed,
		},
		OutputDir: outputDir,
	}
	if p.Driver != nil && p.Driver.Path != "" {
		req.DriverScript = resolvePath(baseDir, p.Driver.Path)
	}
	return req
}

// ResolveEnsemble returns a copy of the ensemble block with its run-dir
// pairs and output directory anchored to baseDir, like every other plan
// path. Nil when the plan declares no ensemble.
func (p *Plan) ResolveEnsemble(baseDir string) *EnsembleSpec {
	if p.Ensemble == nil {
		return nil
	}
	resolved := EnsembleSpec{
		Metrics: append([]string(nil), p.Ensemble.Metrics...),
		Pairs:   make([][]string, 0, len(p.Ensemble.Pairs)),
	}
	if p.Ensemble.OutputDir != "" {
		resolved.OutputDir = resolvePath(baseDir, p.Ensemble.OutputDir)
	}
	for _, pair := range p.Ensemble.Pairs {
		resolved.Pairs = append(resolved.Pairs, []string{
			resolvePath(baseDir, pair[0]),
			resolvePath(baseDir, pair[1]),
		})
	}
	return &resolved
}

// ExpanderOptions translates the plan's driver block into expander options.
func (p *Plan) ExpanderOptions() []expand.Option {
	if p.Driver == nil {
		return nil
	}
	var opts []expand.Option
	if p.Driver.Command != "" {
		opts = append(opts, expand.WithCommandTemplate(p.Driver.Command))
	}
	if p.Driver.Shebang != "" {
		opts = append(opts, expand.WithShebang(p.Driver.Shebang))
	}
	return opts
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
