package cssveil

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine runs the three phases in strict order: scan the whole tree, build
// one mapping, rewrite every file against it. The ordering matters because a
// name discovered in one file may need renaming in another; no rewrite
// starts until the mapping is final.
type Engine struct {
	cfg      Config
	scanner  *Scanner
	assigner *Assigner
	log      zerolog.Logger
}

// New builds an engine. The configuration is validated once here; the
// components created from it hold no further shared mutable state.
func New(cfg Config, log zerolog.Logger) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		cfg:      cfg,
		scanner:  NewScanner(cfg),
		assigner: NewAssigner(cfg),
		log:      log.With().Str("component", "engine").Logger(),
	}, nil
}

// Run executes scan, assign, and rewrite over the provider's files.
//
// A mapping collision is fatal and returns before any file is persisted.
// Per-file problems (undecodable content, write failures) are collected into
// the result and do not abort the batch.
func (e *Engine) Run(ctx context.Context, provider FileProvider) (*Result, error) {
	files, err := provider.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	e.log.Debug().Int("files", len(files)).Msg("sources listed")

	selectors, scanIssues := e.scanAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Info().Int("selectors", len(selectors)).Int("files", len(files)).Msg("scan complete")

	mapping, err := e.assigner.BuildMapping(selectors)
	if err != nil {
		return nil, err
	}

	result := &Result{
		FilesScanned:   len(files),
		SelectorsFound: len(selectors),
		Mapping:        mapping,
		Issues:         scanIssues,
	}

	rewriteIssues, rewritten, unchanged, err := e.rewriteAll(ctx, files, mapping, provider)
	if err != nil {
		return nil, err
	}
	result.Issues = append(result.Issues, rewriteIssues...)
	result.FilesRewritten = rewritten
	result.FilesUnchanged = unchanged

	e.log.Info().
		Int("rewritten", rewritten).
		Int("unchanged", unchanged).
		Int("issues", len(result.Issues)).
		Msg("rewrite complete")

	return result, nil
}

// Discover runs only the scan and assignment phases and returns the mapping
// that a full run would use, without writing anything. Collisions surface
// here the same way they would in Run.
func (e *Engine) Discover(ctx context.Context, provider FileProvider) (Mapping, error) {
	files, err := provider.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	selectors, _ := e.scanAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.assigner.BuildMapping(selectors)
}

// scanAll scans files concurrently into per-index partial sets and unions
// them afterwards, so no lock guards the accumulation.
func (e *Engine) scanAll(ctx context.Context, files []SourceFile) (map[string]bool, []FileIssue) {
	partial := make([]map[string]bool, len(files))
	issues := make([]FileIssue, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs(len(files)))

	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if !decodable(f.Content) {
				issues[i] = FileIssue{
					Path:     f.Path,
					Stage:    StageScan,
					Severity: SeverityWarning,
					Text:     ErrNotText.Error() + "; file skipped",
				}
				return nil
			}
			partial[i] = e.scanner.Scan(string(f.Content), f.Format)
			return nil
		})
	}
	_ = g.Wait() // workers only return context errors; the caller checks ctx

	union := make(map[string]bool)
	for _, set := range partial {
		for name := range set {
			union[name] = true
		}
	}

	var reported []FileIssue
	for _, is := range issues {
		if is.Path != "" {
			reported = append(reported, is)
		}
	}
	return union, reported
}

// rewriteAll rewrites files concurrently against the immutable mapping.
// Undecodable files are persisted unchanged (the output tree stays a
// functional clone) and reported; write failures are reported and the batch
// continues.
func (e *Engine) rewriteAll(ctx context.Context, files []SourceFile, mapping Mapping, provider FileProvider) ([]FileIssue, int, int, error) {
	rewriter := NewRewriter(mapping, e.cfg.Mode)

	type outcome struct {
		issue   FileIssue
		changed bool
		written bool
	}
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs(len(files)))

	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			out := f.Content
			changed := false
			if decodable(f.Content) {
				text := rewriter.Rewrite(string(f.Content), f.Format)
				changed = text != string(f.Content)
				out = []byte(text)
			} else {
				outcomes[i].issue = FileIssue{
					Path:     f.Path,
					Stage:    StageRewrite,
					Severity: SeverityWarning,
					Text:     ErrNotText.Error() + "; copied unchanged",
				}
			}

			if err := provider.Persist(gctx, f.Path, out); err != nil {
				outcomes[i].issue = FileIssue{
					Path:     f.Path,
					Stage:    StageWrite,
					Severity: SeverityError,
					Text:     err.Error(),
				}
				return nil
			}
			outcomes[i].written = true
			outcomes[i].changed = changed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}

	var issues []FileIssue
	rewritten, unchanged := 0, 0
	for _, o := range outcomes {
		if o.issue.Path != "" {
			issues = append(issues, o.issue)
		}
		if !o.written {
			continue
		}
		if o.changed {
			rewritten++
		} else {
			unchanged++
		}
	}
	return issues, rewritten, unchanged, nil
}

func (e *Engine) jobs(n int) int {
	jobs := e.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if n > 0 && jobs > n {
		jobs = n
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

// decodable reports whether content can be treated as text. NUL bytes or
// invalid UTF-8 mean the file is opaque and must not be rewritten.
func decodable(content []byte) bool {
	return utf8.Valid(content) && !bytes.ContainsRune(content, 0)
}
