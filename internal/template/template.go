package template

import "strings"

type tokenKind int

const (
	tokenLit tokenKind = iota
	tokenVar
)

type token struct {
	kind tokenKind
	text string
}

// Template is a parsed name template: a sequence of literal spans and
// <variable> spans.
type Template struct {
	raw    string
	tokens []token
}

// New parses a template using "<" and ">" as variable delimiters.
//
// An opening bracket without a closing one is kept as literal text, so
// parsing never fails.
func New(s string) *Template {
	t := &Template{raw: s}

	for len(s) > 0 {
		open := strings.Index(s, "<")
		if open < 0 {
			t.tokens = append(t.tokens, token{tokenLit, s})
			break
		}
		if open > 0 {
			t.tokens = append(t.tokens, token{tokenLit, s[:open]})
			s = s[open:]
			continue
		}

		end := strings.Index(s[1:], ">")
		if end < 0 {
			t.tokens = append(t.tokens, token{tokenLit, s})
			break
		}
		t.tokens = append(t.tokens, token{tokenVar, s[1 : 1+end]})
		s = s[end+2:]
	}

	return t
}

// String returns the original template text.
func (t *Template) String() string {
	return t.raw
}

// Vars returns the variable names in order of appearance, duplicates
// included.
func (t *Template) Vars() []string {
	var vars []string
	for _, tok := range t.tokens {
		if tok.kind == tokenVar {
			vars = append(vars, tok.text)
		}
	}
	return vars
}

// Contains reports whether the template uses the named variable.
func (t *Template) Contains(name string) bool {
	for _, tok := range t.tokens {
		if tok.kind == tokenVar && tok.text == name {
			return true
		}
	}
	return false
}

// Expand renders the template, invoking fn for every variable span so
// the caller can write the substitution into buf.
func (t *Template) Expand(fn func(buf *strings.Builder, name string)) string {
	var buf strings.Builder
	buf.Grow(len(t.raw))
	for _, tok := range t.tokens {
		if tok.kind == tokenLit {
			buf.WriteString(tok.text)
		} else {
			fn(&buf, tok.text)
		}
	}
	return buf.String()
}

// Normalize rewrites characters that are unsafe in file names. Slashes
// become dashes so a substituted value cannot introduce directory
// separators; characters Windows rejects are swapped for fullwidth
// look-alikes or dropped.
func Normalize(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, c := range s {
		switch c {
		case '"':
			buf.WriteRune('\'')
		case '<':
			buf.WriteRune('〈')
		case '>':
			buf.WriteRune('﹥')
		case ':':
			buf.WriteRune(' ')
		case '/', '\\':
			buf.WriteRune('-')
		case '?':
			// dropped
		case '*':
			buf.WriteRune('﹡')
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
