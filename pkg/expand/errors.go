package expand

import (
	"errors"

	"github.com/LynkerIntel/nh-rungen/pkg/config"
	"github.com/LynkerIntel/nh-rungen/pkg/driver"
)

// ErrOutputWrite reports that the output directory could not be created or a
// generated config file could not be written.
var ErrOutputWrite = errors.New("output not writable")

// ErrTemplateNotFound aliases the loader sentinel so callers can match every
// expansion failure mode against this package alone.
var ErrTemplateNotFound = config.ErrTemplateNotFound

// ErrDriverScriptWrite aliases the script writer sentinel.
var ErrDriverScriptWrite = driver.ErrScriptWrite
