package cssveil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// SourceFile is one file handed to the engine: a root-relative path, raw
// content, and the format derived from its extension.
type SourceFile struct {
	Path    string
	Content []byte
	Format  Format
}

// FileProvider is the boundary between the engine and the filesystem.
// Sources yields the files to scan and rewrite; Persist accepts rewritten
// content. The engine never touches the filesystem directly, which keeps the
// core testable against in-memory providers.
type FileProvider interface {
	Sources(ctx context.Context) ([]SourceFile, error)
	Persist(ctx context.Context, path string, content []byte) error
}

// DirProviderOptions configures a DirProvider.
type DirProviderOptions struct {
	Root         string   // source tree root
	Output       string   // output directory; relative paths resolve against the working directory
	Includes     []string // optional doublestar globs relative to Root; empty = every target-extension file
	ExcludedDirs []string // directory basenames skipped entirely; empty = defaults
}

// DefaultExcludedDirs are directory names never traversed.
var DefaultExcludedDirs = []string{".git", "node_modules", "dist", ".vscode", "__pycache__"}

// DirProvider walks a source tree and writes rewritten files into a parallel
// output tree. Exclusions are three-layered: the excluded-directory set, an
// optional .gitignore in the root, and the include globs.
type DirProvider struct {
	root     string
	output   string
	includes []string
	excluded map[string]bool

	giOnce sync.Once
	gi     *ignore.GitIgnore
}

// NewDirProvider validates the root and prepares the provider. The output
// directory's basename is always excluded from traversal so a previous run's
// output is never scanned as input.
func NewDirProvider(opts DirProviderOptions) (*DirProvider, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", opts.Root)
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("output directory must be set")
	}

	dirs := opts.ExcludedDirs
	if len(dirs) == 0 {
		dirs = DefaultExcludedDirs
	}
	excluded := make(map[string]bool, len(dirs)+1)
	for _, d := range dirs {
		excluded[d] = true
	}
	excluded[filepath.Base(opts.Output)] = true

	return &DirProvider{
		root:     opts.Root,
		output:   opts.Output,
		includes: opts.Includes,
		excluded: excluded,
	}, nil
}

// gitIgnore lazily loads .gitignore from the root. Missing files degrade
// gracefully to no filtering, matching how the scanner in similar tools
// treats an absent .gitignore.
func (p *DirProvider) gitIgnore() *ignore.GitIgnore {
	p.giOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(p.root, ".gitignore"))
		if err != nil {
			p.gi = nil
			return
		}
		p.gi = gi
	})
	return p.gi
}

// Sources walks the tree and returns every matching target file, sorted by
// path for deterministic processing order.
func (p *DirProvider) Sources(ctx context.Context) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != p.root && p.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(p.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !p.selects(rel) {
			return nil
		}

		content, err := os.ReadFile(path) // #nosec G304 - paths come from the walked root
		if err != nil {
			return err
		}

		files = append(files, SourceFile{
			Path:    rel,
			Content: content,
			Format:  FormatForPath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// selects applies extension, gitignore, and include-glob filtering to a
// root-relative slash path.
func (p *DirProvider) selects(rel string) bool {
	if FormatForPath(rel) == FormatUnknown {
		return false
	}
	if gi := p.gitIgnore(); gi != nil && gi.MatchesPath(rel) {
		return false
	}
	if len(p.includes) == 0 {
		return true
	}
	for _, pattern := range p.includes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Persist writes content under the output directory, mirroring the source
// layout.
func (p *DirProvider) Persist(ctx context.Context, path string, content []byte) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	dest := filepath.Join(p.output, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil { // #nosec G306
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CopyAssets copies every non-target file (images, fonts, anything without a
// recognized extension) into the output tree unchanged, so the output is a
// functional clone of the source. Returns the number of files copied.
func (p *DirProvider) CopyAssets(ctx context.Context) (int, error) {
	copied := 0

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != p.root && p.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(p.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Target files are persisted by the rewrite phase; gitignored files
		// stay out of the clone entirely.
		if FormatForPath(rel) != FormatUnknown {
			return nil
		}
		if strings.HasSuffix(rel, ".gitignore") {
			return nil
		}
		if gi := p.gitIgnore(); gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		content, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return err
		}
		if err := p.Persist(ctx, rel, content); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}
