package adapters

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/expr"
)

func createTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/lib/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/lib/b.txt", []byte("bee"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/lib/a.md", []byte("# hello"), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/lib/sub/deep.txt", []byte("deep"), 0o644))
	return fs
}

func TestFilesystem_Capabilities(t *testing.T) {
	fsa := NewFilesystem(createTestFs(t))

	root := fsa.Root("/lib/")
	assert.Equal(t, "/lib", root)

	name, err := fsa.Name(root)
	require.NoError(t, err)
	assert.Equal(t, "lib", name)

	adj, err := fsa.Adjacent(root)
	require.NoError(t, err)
	assert.Equal(t, []adapter.Vertex{"/lib/a.md", "/lib/b.txt", "/lib/sub"}, adj)

	adj, err = fsa.Adjacent("/lib/b.txt")
	require.NoError(t, err)
	assert.Empty(t, adj)

	adj, err = fsa.Adjacent("/nope")
	require.NoError(t, err)
	assert.Empty(t, adj)

	content, err := fsa.Content("/lib/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "bee", content)

	content, err = fsa.Content("/lib/sub")
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestFilesystem_Attributes(t *testing.T) {
	fsa := NewFilesystem(createTestFs(t))

	testCases := []struct {
		path string
		attr string
		want any
	}{
		{"/lib/a.md", "ext", ".md"},
		{"/lib/a.md", "base", "a.md"},
		{"/lib/a.md", "dir", "/lib"},
		{"/lib/a.md", "size", int64(7)},
		{"/lib/a.md", "perm", "0600"},
		{"/lib/a.md", "is_dir", false},
		{"/lib/a.md", "is_regular", true},
		{"/lib/a.md", "is_symlink", false},
		{"/lib/sub", "is_dir", true},
		{"/lib/a.md", "unknown", nil},
		{"/missing", "size", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.path+"/"+tc.attr, func(t *testing.T) {
			got, err := fsa.Attribute(tc.path, tc.attr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	attrs, err := fsa.Attributes("/lib/a.md")
	require.NoError(t, err)
	keys := make([]string, 0, len(attrs))
	for name := range attrs {
		keys = append(keys, name)
	}
	assert.ElementsMatch(t, FilesystemAttributes, keys)
	assert.IsType(t, time.Time{}, attrs["mod_time"])
}

func TestFilesystem_NeverInferred(t *testing.T) {
	assert.False(t, NewFilesystem(nil).AdaptsTo("/tmp"))
}

func TestFilesystem_BadVertex(t *testing.T) {
	_, err := NewFilesystem(nil).Name(42)
	assert.Error(t, err)
}

func TestFilesystem_Expression(t *testing.T) {
	fsa := NewFilesystem(createTestFs(t))

	got, err := expr.NewRoot().Child("sub").Child("deep.txt").Content().Eval("/lib", fsa)
	require.NoError(t, err)
	assert.Equal(t, "deep", got)

	got, err = expr.NewRoot().Adjacent().Where(expr.Conditions{"ext": ".txt"}).Attr("base").Eval("/lib", fsa)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", got)

	got, err = expr.NewRoot().Adjacent().Where(expr.Conditions{"is_dir": true}).Adjacent().Eval("/lib", fsa)
	require.NoError(t, err)
	assert.Equal(t, []adapter.Vertex{"/lib/sub/deep.txt"}, got)
}
