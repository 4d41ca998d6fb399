package config

import "errors"

// ErrTemplateNotFound reports that a named template file does not exist at
// its declared location. Callers match it with errors.Is; the wrapping error
// names the template and path.
var ErrTemplateNotFound = errors.New("template not found")
