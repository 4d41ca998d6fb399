package plan

// DefaultRunDirPlaceholder is the literal token that receives the base run
// directory value in every combination.
const DefaultRunDirPlaceholder = "BASERUNDIR"

// Plan is the YAML document describing one generation run: the identifier
// lists, the templates to expand, the fixed substitutions, and the optional
// driver script and ensemble blocks.
type Plan struct {
	// RunDir is the base run directory substituted wherever the run-dir
	// placeholder appears. Optional.
	RunDir string `yaml:"run_dir"`

	// Placeholders overrides the literal tokens. Zero values use defaults.
	Placeholders PlaceholderSpec `yaml:"placeholders"`

	// Basins lists gauge ids inline. Mutually exclusive with BasinFile.
	Basins []string `yaml:"basins"`

	// BasinFile points at a one-id-per-line basin list file, resolved
	// relative to the plan file.
	BasinFile string `yaml:"basin_file"`

	// Seeds lists the secondary identifiers, kept as strings since they are
	// substituted verbatim.
	Seeds []string `yaml:"seeds"`

	// Templates to expand, in declaration order.
	Templates []TemplateSpec `yaml:"templates"`

	// Substitutions holds extra fixed token/value pairs merged into every
	// combination.
	Substitutions map[string]string `yaml:"substitutions"`

	// Driver configures the generated driver script. Optional.
	Driver *DriverSpec `yaml:"driver"`

	// Ensemble configures the results-ensembling invocations. Optional,
	// consumed by rungen-ensemble rather than the expander.
	Ensemble *EnsembleSpec `yaml:"ensemble"`
}

// PlaceholderSpec names the literal tokens for the three well-known values.
type PlaceholderSpec struct {
	Basin  string `yaml:"basin"`
	Seed   string `yaml:"seed"`
	RunDir string `yaml:"run_dir"`
}

// TemplateSpec pairs a logical template name with its file path.
type TemplateSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// DriverSpec configures the generated driver script.
type DriverSpec struct {
	Path    string `yaml:"path"`
	Command string `yaml:"command"`
	Shebang string `yaml:"shebang"`
}

// EnsembleSpec lists the run-directory pairs handed to the external
// results-ensembling tool.
type EnsembleSpec struct {
	Metrics   []string   `yaml:"metrics"`
	OutputDir string     `yaml:"output_dir"`
	Pairs     [][]string `yaml:"pairs"`
}
