// Package expand coordinates the cartesian expansion of run-config
// templates: one output file per (basin, seed, template) combination, plus
// the optional driver script that collects an invocation line per file.
package expand
