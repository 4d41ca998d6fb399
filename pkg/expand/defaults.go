package expand

import (
	"io/fs"

	internalloader "github.com/LynkerIntel/nh-rungen/internal/config/loader"
	"github.com/LynkerIntel/nh-rungen/pkg/config"
)

func newDefaultLoader(fsys fs.FS) config.Loader {
	return internalloader.New(config.NewLoaderOptions(config.WithFileSystem(fsys)))
}
