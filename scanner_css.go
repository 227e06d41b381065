package cssveil

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// scanCSSSelectors discovers class and id names from CSS selector context
// using a real CSS lexer. Comments, strings, and url() contents never become
// tokens of interest, and declaration values are tracked so that hash colors
// (#fff) and var(--name) usages contribute nothing. Custom property names
// (--name) lex as identifiers without a preceding . or #, so they are never
// candidates either.
//
// Known gap: inside nested blocks a tag selector with a pseudo-class
// (div:hover .foo) looks like a property declaration to the value tracker,
// so .foo is skipped there. Names used that way are still discovered from
// their rule definitions elsewhere.
func (s *Scanner) scanCSSSelectors(content string, found map[string]bool) {
	lexer := css.NewLexer(parse.NewInputString(content))

	depth := 0
	inValue := false      // between property colon and ; or }
	declStart := true     // the next ident may be a property name
	possibleProp := false // last ident was in property position

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue

		case css.LeftBraceToken:
			depth++
			inValue = false
			declStart = true
			possibleProp = false

		case css.RightBraceToken:
			if depth > 0 {
				depth--
			}
			inValue = false
			declStart = true
			possibleProp = false

		case css.SemicolonToken:
			inValue = false
			declStart = true
			possibleProp = false

		case css.ColonToken:
			if possibleProp {
				inValue = true
			}
			possibleProp = false

		case css.IdentToken:
			if declStart && depth > 0 && !inValue {
				possibleProp = true
			}
			declStart = false

		case css.DelimToken:
			declStart = false
			possibleProp = false
			if len(text) == 1 && text[0] == '.' && !inValue {
				// Class selector: the identifier follows immediately.
				tt2, name := lexer.Next()
				if tt2 == css.IdentToken {
					s.add(string(name), s.minLength, found)
				}
			}

		case css.HashToken:
			declStart = false
			possibleProp = false
			if !inValue {
				name := strings.TrimPrefix(string(text), "#")
				if !isHexColor(name) {
					s.add(name, s.minLength, found)
				}
			}

		default:
			declStart = false
			possibleProp = false
		}
	}
}

// isHexColor reports whether name has the shape of a hex color literal.
// #abc is a valid id selector lexically, but a token that parses as a color
// is far more likely to be one; renaming it would be destructive.
func isHexColor(name string) bool {
	switch len(name) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
