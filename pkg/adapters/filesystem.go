package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/roach88/rpath/pkg/adapter"
)

// Filesystem adapts a directory tree. Vertices are path strings; the graph
// passed to Eval is the path evaluation starts at.
//
// Filesystem never adapts anything by inference because any string could be
// a path. Register it and refer to it by id.
type Filesystem struct {
	adapter.Base

	// Fs is the filesystem walked. Nil means the host filesystem.
	Fs afero.Fs
}

// NewFilesystem creates a Filesystem over fs. A nil fs walks the host
// filesystem.
func NewFilesystem(fs afero.Fs) *Filesystem {
	return &Filesystem{Fs: fs}
}

func (f *Filesystem) fs() afero.Fs {
	if f.Fs == nil {
		return afero.NewOsFs()
	}
	return f.Fs
}

// Root returns graph as a cleaned path.
func (f *Filesystem) Root(graph any) adapter.Vertex {
	p, ok := graph.(string)
	if !ok {
		return nil
	}
	return filepath.Clean(p)
}

// Name returns the base name of the path.
func (f *Filesystem) Name(v adapter.Vertex) (string, error) {
	p, err := pathOf(v)
	if err != nil {
		return "", err
	}
	return filepath.Base(p), nil
}

// Adjacent returns the entries of a directory sorted by name. Files and
// unreadable directories have no adjacent vertices.
func (f *Filesystem) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	p, err := pathOf(v)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(f.fs(), p)
	if err != nil {
		return []adapter.Vertex{}, nil
	}

	out := make([]adapter.Vertex, 0, len(entries))
	for _, e := range entries {
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		out = append(out, filepath.Join(p, e.Name()))
	}
	return out, nil
}

// FilesystemAttributes lists the attribute names Filesystem answers. The
// map returned by Attributes has exactly these keys.
var FilesystemAttributes = []string{
	"base", "dir", "ext", "size", "mode", "perm", "mod_time", "is_dir", "is_regular", "is_symlink",
}

// Attribute returns a file attribute (see FilesystemAttributes). Unknown
// names and paths that cannot be stat'ed are absent.
func (f *Filesystem) Attribute(v adapter.Vertex, name string) (any, error) {
	attrs, err := f.Attributes(v)
	if err != nil || attrs == nil {
		return nil, err
	}
	value, ok := attrs[name]
	if !ok {
		return nil, nil
	}
	return value, nil
}

// Attributes returns all attributes of the path, or nil if it cannot be
// stat'ed.
func (f *Filesystem) Attributes(v adapter.Vertex) (map[string]any, error) {
	p, err := pathOf(v)
	if err != nil {
		return nil, err
	}

	fs := f.fs()
	info, err := fs.Stat(p)
	if err != nil {
		return nil, nil
	}

	symlink := false
	if lstater, ok := fs.(afero.Lstater); ok {
		if li, called, err := lstater.LstatIfPossible(p); err == nil && called {
			symlink = li.Mode()&os.ModeSymlink != 0
		}
	}

	return map[string]any{
		"base":       filepath.Base(p),
		"dir":        filepath.Dir(p),
		"ext":        filepath.Ext(p),
		"size":       info.Size(),
		"mode":       info.Mode().String(),
		"perm":       fmt.Sprintf("%04o", info.Mode().Perm()),
		"mod_time":   info.ModTime().UTC(),
		"is_dir":     info.IsDir(),
		"is_regular": info.Mode().IsRegular(),
		"is_symlink": symlink,
	}, nil
}

// Content returns the contents of a regular file as a string. Directories
// and unreadable files have no content.
func (f *Filesystem) Content(v adapter.Vertex) (any, error) {
	p, err := pathOf(v)
	if err != nil {
		return nil, err
	}

	fs := f.fs()
	info, err := fs.Stat(p)
	if err != nil || info.IsDir() {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, p)
	if err != nil {
		return nil, nil
	}
	return string(data), nil
}

func pathOf(v adapter.Vertex) (string, error) {
	p, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("filesystem: vertex is %T, want path string", v)
	}
	return p, nil
}
