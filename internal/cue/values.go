package cue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Weights of the colon-separated time fields, rightmost first. The
// rightmost field is raw milliseconds, not 1/75-second CD frames.
var timeWeights = [...]int64{1, 1000, 60_000, 3_600_000}

// escaped maps the character following a backslash to its replacement.
// Anything without a named escape stands for itself, so `\"` and `\\`
// yield a literal quote and backslash.
func escaped(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return c
}

// parseWord parses a single string value off the front of input and
// returns the unconsumed rest.
//
// A value wrapped in double quotes runs to the closing quote and may
// contain whitespace; an unquoted value runs to the next whitespace.
// Both forms decode backslash escapes. A trailing lone backslash in an
// unquoted value is kept literally; a quote that is never closed is an
// error.
func parseWord(input string) (rest, val string, err error) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	var buf strings.Builder

	if !strings.HasPrefix(input, `"`) {
		i := 0
		for i < len(input) {
			r, size := utf8.DecodeRuneInString(input[i:])
			switch r {
			case ' ', '\t', '\r', '\n':
				return input[i:], buf.String(), nil
			case '\\':
				i += size
				if i >= len(input) {
					buf.WriteByte('\\')
					return "", buf.String(), nil
				}
				esc, escSize := utf8.DecodeRuneInString(input[i:])
				buf.WriteRune(escaped(esc))
				i += escSize
			default:
				buf.WriteRune(r)
				i += size
			}
		}
		return "", buf.String(), nil
	}

	i := 1 // opening quote
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		i += size
		switch r {
		case '"':
			return input[i:], buf.String(), nil
		case '\\':
			if i >= len(input) {
				return "", "", errors.New("unterminated double-quoted string")
			}
			esc, escSize := utf8.DecodeRuneInString(input[i:])
			buf.WriteRune(escaped(esc))
			i += escSize
		default:
			buf.WriteRune(r)
		}
	}
	return "", "", errors.New("unterminated double-quoted string")
}

// parseValue parses a field remainder as one value.
//
// When the trimmed remainder is wrapped in double quotes it is decoded
// as a quoted literal that must consume the whole remainder; trailing
// content after the closing quote is an error. Anything else is taken
// verbatim. An empty remainder is an error.
func parseValue(input string) (string, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return "", errors.New("missing value")
	case len(input) > 1 && strings.HasPrefix(input, `"`) && strings.HasSuffix(input, `"`):
		rest, val, err := parseWord(input)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(rest) != "" {
			return "", errors.New("too many values in line")
		}
		return val, nil
	default:
		return input, nil
	}
}

// parseComment parses a REM remainder into a key/value pair. The key is
// the first value on the line; the rest, when present, is the value. A
// key with nothing after it maps to the empty string.
func parseComment(input string) (key, val string, err error) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if input == "" {
		return "", "", errors.New("expected 2 values, have none")
	}

	rest, key, err := parseWord(input)
	if err != nil {
		return "", "", err
	}

	i := strings.IndexFunc(rest, func(r rune) bool { return r != ' ' && r != '\t' })
	if i < 0 {
		return key, "", nil
	}

	val, err = parseValue(rest[i:])
	if err != nil {
		return "", "", err
	}
	return key, strings.TrimSpace(val), nil
}

// parseTimeOffset parses an INDEX remainder into milliseconds.
//
// The first word is the index number, which callers that care about it
// must read themselves; here it is discarded. The time specifier holds
// up to four colon-separated integers read right to left as
// milliseconds, seconds, minutes and hours. Fields beyond the fourth
// are ignored.
func parseTimeOffset(input string) (int64, error) {
	rest, _, ok := nextWord(input)
	if !ok {
		return 0, errors.New("missing index number")
	}

	spec, ok := consumeSpace1(rest)
	if !ok {
		return 0, errors.New("missing time specifier after index number")
	}

	word, err := parseValue(spec)
	if err != nil {
		return 0, err
	}

	var n int64
	fields := strings.Split(word, ":")
	for w, i := 0, len(fields)-1; i >= 0 && w < len(timeWeights); i, w = i-1, w+1 {
		v, err := strconv.ParseUint(fields[i], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid index time: %s", word)
		}
		n += timeWeights[w] * int64(v)
	}
	return n, nil
}

// consumeSpace1 strips one or more leading spaces or tabs and reports
// whether anything remains. It fails when input does not start with
// whitespace or holds nothing else.
func consumeSpace1(input string) (string, bool) {
	i := 0
	for i < len(input) && (input[i] == ' ' || input[i] == '\t') {
		i++
	}
	if i == 0 || i >= len(input) {
		return "", false
	}
	return input[i:], true
}
