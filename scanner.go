package cssveil

import (
	"regexp"
	"strings"
)

// Scanner extracts candidate selector names from file content, per format.
// Scanning is a pure read: results are unioned across files by the engine
// before the mapping is generated.
type Scanner struct {
	whitelist  map[string]bool
	scanCSS    bool
	scanJS     bool
	minLength  int
	jsSelector *regexp.Regexp
}

var (
	// class="btn btn-primary" / id='main-title'. RE2 has no backreferences,
	// so double- and single-quoted values are matched as alternatives. The
	// leading character class keeps data-class= and similar from matching;
	// \b would accept the boundary after the hyphen.
	attrPattern = regexp.MustCompile(`(?:^|[^\w-])(?:class|id)\s*=\s*("[^"]*"|'[^']*')`)

	// String literals in JS source. Escaped quotes end the match early,
	// which at worst loses a candidate, never invents one.
	jsLiteralPattern = regexp.MustCompile(`"[^"\\]*"|'[^'\\]*'`)

	// Lexical rule for identifiers: word characters and hyphens.
	identPattern = regexp.MustCompile(`^[\w-]+$`)
)

// NewScanner builds a scanner from the engine configuration.
func NewScanner(cfg Config) *Scanner {
	cfg = cfg.WithDefaults()

	wl := make(map[string]bool, len(cfg.Whitelist))
	for _, name := range cfg.Whitelist {
		wl[name] = true
	}

	return &Scanner{
		whitelist: wl,
		scanCSS:   cfg.ScanCSS,
		scanJS:    cfg.ScanJS,
		minLength: cfg.MinLength,
		// A literal is a selector candidate only when its entire content is
		// .name or #name. That matches exactly what the JS rewrite strategy
		// can later replace, so discovery never outruns rewriting.
		jsSelector: regexp.MustCompile(`^[.#]([\w-]+)$`),
	}
}

// Scan returns the set of candidate identifiers found in content.
// Whitelisted names are excluded. Unknown formats contribute nothing.
func (s *Scanner) Scan(content string, format Format) map[string]bool {
	found := make(map[string]bool)

	switch format {
	case FormatHTML:
		s.scanHTMLAttrs(content, found)
	case FormatCSS:
		if s.scanCSS {
			s.scanCSSSelectors(content, found)
		}
	case FormatJS:
		if s.scanJS {
			s.scanJSLiterals(content, found)
		}
	}

	return found
}

// scanHTMLAttrs collects tokens from class and id attribute values.
// Class lists are whitespace-separated; id values are a single token, which
// the same split handles.
func (s *Scanner) scanHTMLAttrs(content string, found map[string]bool) {
	for _, m := range attrPattern.FindAllStringSubmatch(content, -1) {
		quoted := m[1]
		value := quoted[1 : len(quoted)-1]

		for _, token := range strings.Fields(value) {
			s.add(token, 0, found)
		}
	}
}

// scanJSLiterals collects selector-shaped string literals ('.name', '#name').
// Bare class literals like classList.add('btn') are deliberately not a
// discovery source: they are still rewritten when the name is discovered
// from markup or styles, but treating every short string as a selector
// would rename unrelated text.
func (s *Scanner) scanJSLiterals(content string, found map[string]bool) {
	for _, lit := range jsLiteralPattern.FindAllString(content, -1) {
		inner := lit[1 : len(lit)-1]
		if m := s.jsSelector.FindStringSubmatch(inner); m != nil {
			s.add(m[1], s.minLength, found)
		}
	}
}

// add applies the lexical rule, minimum length, and whitelist before
// recording a candidate.
func (s *Scanner) add(token string, minLen int, found map[string]bool) {
	if token == "" || len(token) < minLen {
		return
	}
	if !identPattern.MatchString(token) {
		return
	}
	if s.whitelist[token] {
		return
	}
	found[token] = true
}
