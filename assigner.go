package cssveil

import (
	"crypto/md5" // #nosec G501 - used as a stable name generator, not for security
	"encoding/hex"
	"sort"
)

// Assigner converts a set of discovered identifiers into a stable 1:1
// mapping from original name to a short, valid replacement identifier.
//
// Replacement names are prefix + hex(md5(name))[:width]. The prefix starts
// with a letter so names are valid CSS identifiers and HTML attribute
// tokens, and hashing makes the mapping deterministic across runs: repeated
// runs over an unchanged tree produce byte-identical output without
// persisting anything.
type Assigner struct {
	prefix string
	width  int
	hash   func(string) string // replaceable in tests to force collisions
}

// NewAssigner builds an assigner from the engine configuration.
// Config.Validate should have been called; invalid prefixes would otherwise
// produce broken selectors.
func NewAssigner(cfg Config) *Assigner {
	cfg = cfg.WithDefaults()
	return &Assigner{prefix: cfg.Prefix, width: cfg.Width, hash: md5Hex}
}

func md5Hex(name string) string {
	sum := md5.Sum([]byte(name)) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// ReplacementFor computes the deterministic replacement name for a single
// identifier. Identical input always yields identical output.
func (a *Assigner) ReplacementFor(name string) string {
	return a.prefix + a.hash(name)[:a.width]
}

// BuildMapping assigns a replacement to every selector. If two distinct
// identifiers truncate to the same replacement, the run must not proceed:
// silently merging unrelated names would change rendering and script
// behavior. Iteration is sorted so a collision always reports the same pair.
func (a *Assigner) BuildMapping(selectors map[string]bool) (Mapping, error) {
	names := make([]string, 0, len(selectors))
	for name := range selectors {
		names = append(names, name)
	}
	sort.Strings(names)

	mapping := make(Mapping, len(names))
	reverse := make(map[string]string, len(names))

	for _, name := range names {
		repl := a.ReplacementFor(name)
		if prev, taken := reverse[repl]; taken {
			return nil, &CollisionError{
				Existing:    prev,
				Conflicting: name,
				Replacement: repl,
			}
		}
		mapping[name] = repl
		reverse[repl] = name
	}

	return mapping, nil
}
