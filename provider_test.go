package cssveil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func sourcePaths(t *testing.T, p *DirProvider) []string {
	t.Helper()
	files, err := p.Sources(context.Background())
	require.NoError(t, err)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func TestDirProviderSources(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":          `<div class="one"></div>`,
		"css/site.css":        `.one { }`,
		"css/site.scss":       `.two { }`,
		"js/app.js":           `x()`,
		"img/logo.png":        "\x89PNG",
		"notes.txt":           "not a target",
		"node_modules/x.css":  `.vendor { }`,
		"dist/out.css":        `.built { }`,
		".git/objects/a.html": "loose object",
	})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: filepath.Join(root, "encrypted")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"css/site.css",
		"css/site.scss",
		"index.html",
		"js/app.js",
	}, sourcePaths(t, p))
}

func TestDirProviderSourceContentAndFormat(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"page.html": `<p>hi</p>`})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: filepath.Join(root, "out")})
	require.NoError(t, err)

	files, err := p.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "page.html", files[0].Path)
	assert.Equal(t, FormatHTML, files[0].Format)
	assert.Equal(t, `<p>hi</p>`, string(files[0].Content))
}

func TestDirProviderOutputDirNeverScanned(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":           `<div class="one"></div>`,
		"encrypted/index.html": `<div class="stale"></div>`,
	})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: filepath.Join(root, "encrypted")})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html"}, sourcePaths(t, p))
}

func TestDirProviderGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":      "vendor/\nsecret.css\n",
		"site.css":        `.keep { }`,
		"secret.css":      `.drop { }`,
		"vendor/lib.css":  `.drop { }`,
		"pages/page.html": `<p></p>`,
	})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: filepath.Join(root, "out")})
	require.NoError(t, err)

	assert.Equal(t, []string{"pages/page.html", "site.css"}, sourcePaths(t, p))
}

func TestDirProviderIncludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":       `<p></p>`,
		"assets/a.css":     `.a { }`,
		"assets/sub/b.css": `.b { }`,
		"other/c.css":      `.c { }`,
	})

	p, err := NewDirProvider(DirProviderOptions{
		Root:     root,
		Output:   filepath.Join(root, "out"),
		Includes: []string{"assets/**/*.css", "*.html"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"assets/a.css",
		"assets/sub/b.css",
		"index.html",
	}, sourcePaths(t, p))
}

func TestDirProviderExcludedDirsOverride(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep/a.css":         `.a { }`,
		"skipme/b.css":       `.b { }`,
		"node_modules/c.css": `.c { }`,
	})

	p, err := NewDirProvider(DirProviderOptions{
		Root:         root,
		Output:       filepath.Join(root, "out"),
		ExcludedDirs: []string{"skipme"},
	})
	require.NoError(t, err)

	// the override replaces the defaults entirely
	assert.Equal(t, []string{"keep/a.css", "node_modules/c.css"}, sourcePaths(t, p))
}

func TestDirProviderPersist(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "encrypted")
	writeTree(t, root, map[string]string{"css/site.css": `.a { }`})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: out})
	require.NoError(t, err)

	require.NoError(t, p.Persist(context.Background(), "css/site.css", []byte(`.v1 { }`)))

	got, err := os.ReadFile(filepath.Join(out, "css", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, `.v1 { }`, string(got))
}

func TestDirProviderCopyAssets(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "encrypted")
	writeTree(t, root, map[string]string{
		".gitignore":    "tmp/\n",
		"index.html":    `<p></p>`,
		"img/logo.png":  "\x89PNG",
		"fonts/a.woff2": "woff",
		"tmp/cache.bin": "drop",
	})

	p, err := NewDirProvider(DirProviderOptions{Root: root, Output: out})
	require.NoError(t, err)

	copied, err := p.CopyAssets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	got, err := os.ReadFile(filepath.Join(out, "img", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(got))

	// target files belong to the rewrite phase, not the asset copy
	_, err = os.Stat(filepath.Join(out, "index.html"))
	assert.True(t, os.IsNotExist(err))
	// gitignored and .gitignore itself stay out of the clone
	_, err = os.Stat(filepath.Join(out, "tmp", "cache.bin"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, ".gitignore"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewDirProviderErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := NewDirProvider(DirProviderOptions{Root: filepath.Join(t.TempDir(), "nope"), Output: "out"})
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "f.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := NewDirProvider(DirProviderOptions{Root: file, Output: "out"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := NewDirProvider(DirProviderOptions{Root: t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output")
	})
}
