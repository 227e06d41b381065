package cssveil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies which rewrite strategy applies to a file.
type Format int

// Recognized file formats. FormatUnknown files are passed through untouched.
const (
	FormatUnknown Format = iota
	FormatHTML
	FormatCSS
	FormatJS
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatCSS:
		return "css"
	case FormatJS:
		return "js"
	default:
		return "unknown"
	}
}

// FormatForPath derives the format from a file extension.
// scss/sass map to the CSS strategy, htm to HTML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".css", ".scss", ".sass":
		return FormatCSS
	case ".js":
		return FormatJS
	default:
		return FormatUnknown
	}
}

// Mode selects substitution strictness.
type Mode int

const (
	// ModeContext bounds replacement to known syntactic positions
	// (attribute values, selectors, string literals).
	ModeContext Mode = iota
	// ModeNaive replaces word-bounded occurrences anywhere in the text.
	// Faster and simpler, but blind to context; kept for compatibility
	// with trees already processed that way.
	ModeNaive
)

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "context":
		return ModeContext, nil
	case "naive":
		return ModeNaive, nil
	default:
		return ModeContext, fmt.Errorf("unknown mode %q (want context or naive)", s)
	}
}

// Mapping is the finalized original-name to replacement-name table.
// It is built once per run and read-only afterwards.
type Mapping map[string]string

// Config holds the engine configuration. The zero value is not usable
// directly; call WithDefaults or build it through the CLI.
type Config struct {
	Prefix    string   // replacement-name prefix, must start with a letter
	Width     int      // truncated hash width in hex characters
	Mode      Mode     // context-aware or naive substitution
	ScanCSS   bool     // discover bare .name/#name selectors in CSS
	ScanJS    bool     // discover selector string literals in JS
	MinLength int      // minimum token length for CSS/JS bare-selector discovery
	Whitelist []string // identifiers that must never be renamed; empty = defaults
	Jobs      int      // parallel workers per phase; 0 = GOMAXPROCS
}

// DefaultWhitelist contains tag names, global attributes, and common state
// classes that must never be remapped. Checked by exact match only.
var DefaultWhitelist = []string{
	"html", "head", "body", "title", "meta", "link", "script", "style",
	"div", "span", "section", "article", "header", "footer", "main", "nav",
	"ul", "ol", "li", "a", "img", "button", "input", "form", "label",
	"p", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr", "td", "th",
	"id", "class", "type", "name", "href", "src", "width", "height",
	"container", "row", "col", "active", "hidden", "visible", "show",
	"checked", "disabled", "true", "false",
}

// WithDefaults fills in zero-valued fields.
func (c Config) WithDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = "v"
	}
	if c.Width <= 0 {
		c.Width = 8
	}
	if c.MinLength <= 0 {
		c.MinLength = 3
	}
	if len(c.Whitelist) == 0 {
		c.Whitelist = DefaultWhitelist
	}
	return c
}

// Validate rejects configurations that would produce invalid replacement
// names. The prefix must keep names valid as CSS identifiers and HTML
// attribute tokens: it has to start with a letter.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	first := c.Prefix[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z') {
		return fmt.Errorf("prefix %q must start with a letter", c.Prefix)
	}
	for i := 0; i < len(c.Prefix); i++ {
		ch := c.Prefix[i]
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' || ch == '-' || ch == '_') {
			return fmt.Errorf("prefix %q contains invalid character %q", c.Prefix, ch)
		}
	}
	if c.Width < 4 || c.Width > 32 {
		return fmt.Errorf("width %d out of range [4,32]", c.Width)
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	FilesScanned   int         // files consumed during the scan phase
	FilesRewritten int         // files whose content changed
	FilesUnchanged int         // files rewritten to identical content
	SelectorsFound int         // size of the discovered selector set
	Mapping        Mapping     // the finalized mapping used for rewriting
	Issues         []FileIssue // per-file skips and failures
}

// Errors returns the number of error-severity issues.
func (r *Result) Errors() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}
