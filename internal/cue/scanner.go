package cue

// scanner turns pre-split lines into a forward-only sequence of
// (line index, field name, remainder) triples. Blank lines are skipped
// and never emitted. The consumer may rewind to a previously emitted
// line with seek, which is how a field that terminates the current
// scope is re-offered to the enclosing scope.
type scanner struct {
	lines []string
	pos   int
}

// next emits the next non-blank line, split into its first
// whitespace-delimited token and the untrimmed remainder.
func (s *scanner) next() (ln int, field, rest string, ok bool) {
	for s.pos < len(s.lines) {
		i := s.pos
		s.pos++

		rest, field, ok := nextWord(s.lines[i])
		if !ok {
			continue
		}
		return i, field, rest, true
	}
	return 0, "", "", false
}

// seek rewinds the scanner so that line ln is emitted again.
func (s *scanner) seek(ln int) {
	s.pos = ln
}

// exhausted reports whether every line has been consumed.
func (s *scanner) exhausted() bool {
	return s.pos >= len(s.lines)
}

// nextWord splits s into its first whitespace-delimited word and the
// rest of the string. The rest keeps the whitespace that follows the
// word. ok is false when s holds no non-whitespace content.
func nextWord(s string) (rest, word string, ok bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", "", false
	}

	s = s[start:]
	end := len(s)
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			end = i
			break
		}
	}
	return s[end:], s[:end], true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
