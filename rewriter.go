package cssveil

import (
	"regexp"
	"sort"
	"strings"
)

// Rewriter applies a finalized mapping to file content using a
// format-specific strategy. Rewriting is a pure function of (content,
// mapping, mode): the same input always produces the same output, and
// applying it twice produces no further change as long as mapping values
// never collide with keys.
type Rewriter struct {
	mapping Mapping
	mode    Mode
	// Keys ordered longest-first so a longer identifier containing a
	// shorter one as a prefix is fully matched before the shorter key's
	// pattern can fire on the remainder.
	keyed []keyedPattern
}

type keyedPattern struct {
	key         string
	replacement string
	selector    *regexp.Regexp // [.#]key, boundaries checked manually
	word        *regexp.Regexp // \bkey\b, naive mode
}

var (
	// Leading character class instead of \b: the boundary after a hyphen
	// would otherwise let data-class= match.
	htmlAttrPattern = regexp.MustCompile(`(^|[^\w-])(class|id)(\s*=\s*)("[^"]*"|'[^']*')`)
	attrTokenSplit  = regexp.MustCompile(`\S+`)
	urlPattern      = regexp.MustCompile(`url\([^)]*\)`)
)

// NewRewriter precompiles per-key patterns for the given mapping.
// The mapping must be final; it is shared read-only across files.
func NewRewriter(mapping Mapping, mode Mode) *Rewriter {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	keyed := make([]keyedPattern, len(keys))
	for i, k := range keys {
		quoted := regexp.QuoteMeta(k)
		keyed[i] = keyedPattern{
			key:         k,
			replacement: mapping[k],
			selector:    regexp.MustCompile(`[.#]` + quoted),
			word:        regexp.MustCompile(`\b` + quoted + `\b`),
		}
	}

	return &Rewriter{mapping: mapping, mode: mode, keyed: keyed}
}

// Rewrite applies the mapping to content using the strategy for format.
// Unknown formats are returned unchanged.
func (r *Rewriter) Rewrite(content string, format Format) string {
	if len(r.mapping) == 0 {
		return content
	}

	if r.mode == ModeNaive {
		return r.rewriteNaive(content)
	}

	switch format {
	case FormatHTML:
		return r.rewriteHTML(content)
	case FormatCSS:
		return r.rewriteCSS(content)
	case FormatJS:
		return r.rewriteJS(content)
	default:
		return content
	}
}

// rewriteHTML replaces tokens inside class and id attribute values only.
// Tokens not present in the mapping, the quoting style, and the whitespace
// inside and around the attribute are preserved exactly.
func (r *Rewriter) rewriteHTML(content string) string {
	return htmlAttrPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := htmlAttrPattern.FindStringSubmatch(m)
		quoted := sub[4]
		quote := quoted[:1]
		value := quoted[1 : len(quoted)-1]

		rewritten := attrTokenSplit.ReplaceAllStringFunc(value, func(tok string) string {
			if repl, ok := r.mapping[tok]; ok {
				return repl
			}
			return tok
		})

		return sub[1] + sub[2] + sub[3] + quote + rewritten + quote
	})
}

// rewriteCSS replaces occurrences immediately preceded by . or # and not
// followed by a word or hyphen character. Property values and custom
// properties never match (no . or # anchor), url() contents are explicitly
// skipped, and the trailing boundary check stops .btn from firing inside
// .btn-large. Go's RE2 has no lookarounds, so boundaries are verified on
// the match indices instead of in the pattern.
func (r *Rewriter) rewriteCSS(content string) string {
	for _, kp := range r.keyed {
		matches := kp.selector.FindAllStringIndex(content, -1)
		if matches == nil {
			continue
		}

		urls := urlPattern.FindAllStringIndex(content, -1)

		var b strings.Builder
		b.Grow(len(content))
		last := 0
		for _, m := range matches {
			if m[1] < len(content) && isWordOrHyphen(content[m[1]]) {
				continue
			}
			if insideSpan(urls, m[0]) {
				continue
			}
			b.WriteString(content[last : m[0]+1]) // keep the . or # anchor
			b.WriteString(kp.replacement)
			last = m[1]
		}
		b.WriteString(content[last:])
		content = b.String()
	}
	return content
}

// rewriteJS replaces only string literals whose entire content equals a
// mapping key, or a key prefixed with a single . or # (querySelector-style
// references). Partial literals and concatenation expressions are never
// altered: dynamic class construction is unrecoverable from static text and
// is a documented precision boundary, not a missing feature.
func (r *Rewriter) rewriteJS(content string) string {
	return jsLiteralPattern.ReplaceAllStringFunc(content, func(lit string) string {
		quote := lit[:1]
		inner := lit[1 : len(lit)-1]

		if repl, ok := r.mapping[inner]; ok {
			return quote + repl + quote
		}
		if len(inner) > 1 && (inner[0] == '.' || inner[0] == '#') {
			if repl, ok := r.mapping[inner[1:]]; ok {
				return quote + string(inner[0]) + repl + quote
			}
		}
		return lit
	})
}

// rewriteNaive is the whole-text strategy: every word-bounded occurrence of
// a key is replaced, regardless of syntactic position. \b treats hyphens as
// boundaries, so a lone short key can still fire inside a longer hyphenated
// name that is not itself in the mapping. Context mode exists because of
// exactly that.
func (r *Rewriter) rewriteNaive(content string) string {
	for _, kp := range r.keyed {
		content = kp.word.ReplaceAllString(content, kp.replacement)
	}
	return content
}

func isWordOrHyphen(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-'
}

// insideSpan reports whether pos falls within any [start,end) span.
// Spans are sorted and non-overlapping as produced by FindAllStringIndex.
func insideSpan(spans [][]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
		if s[0] > pos {
			break
		}
	}
	return false
}
