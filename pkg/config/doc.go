// Package config exposes the public contracts for run-config templates: the
// Source abstraction, the Template wrapper, and the Loader interface.
// Implementations live under internal/config to keep filesystem strategy
// details hidden from consumers.
package config
