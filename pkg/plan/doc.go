// Package plan loads and validates the YAML run-plan document that drives a
// generation run.
package plan
