package cssveil

import (
	"errors"
	"fmt"
)

// FileIssue records a per-file skip or failure, in a shape that renders
// naturally as file:line linter-style output.
type FileIssue struct {
	Path     string `json:"Path"`     // file the issue applies to
	Stage    string `json:"Stage"`    // "scan", "rewrite", or "write"
	Severity string `json:"Severity"` // "warning" or "error"
	Text     string `json:"Text"`     // human-readable reason
}

// Issue severity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Pipeline stage constants for FileIssue.Stage
const (
	StageScan    = "scan"
	StageRewrite = "rewrite"
	StageWrite   = "write"
)

// ErrNotText is reported when a file's content is not valid UTF-8 text.
// Such files are skipped rather than corrupted.
var ErrNotText = errors.New("content is not valid text")

// CollisionError means two distinct identifiers truncated to the same
// replacement name. It is fatal for the whole run: partial renaming under a
// broken mapping is worse than no renaming, so it is raised before any file
// is written. Increasing Width resolves it.
type CollisionError struct {
	Existing    string // identifier already holding the replacement
	Conflicting string // identifier that hashed to the same replacement
	Replacement string // the shared truncated name
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("replacement name collision: %q and %q both map to %q (increase width)",
		e.Existing, e.Conflicting, e.Replacement)
}
