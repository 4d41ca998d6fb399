package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	pkgconfig "github.com/LynkerIntel/nh-rungen/pkg/config"
)

// Loader implements pkgconfig.Loader by delegating to file or fs.FS
// strategies. Construction helpers live in the top-level rungen package.
type Loader struct {
	fs fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ pkgconfig.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgconfig.LoaderOptions) pkgconfig.Loader {
	return &Loader{
		fs: options.FileSystem,
	}
}

// Load fetches a template body from the provided source and wraps it in a
// Template. A source that does not resolve to an existing file reports
// pkgconfig.ErrTemplateNotFound.
func (l *Loader) Load(ctx context.Context, name string, src pkgconfig.Source) (pkgconfig.Template, error) {
	if src == nil {
		return pkgconfig.Template{}, errors.New("config loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgconfig.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgconfig.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = errors.New("config loader: unsupported source kind")
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pkgconfig.Template{}, fmt.Errorf("config loader: template %q at %s: %w", name, src.Location(), pkgconfig.ErrTemplateNotFound)
		}
		return pkgconfig.Template{}, err
	}

	return pkgconfig.NewTemplate(name, src, data)
}
