package search

import "regexp"

// Matcher applies one search strategy to a single line and returns every
// non-overlapping hit span, sorted ascending, bounded by the line's length.
type Matcher interface {
	Find(line []byte) []Span
}

// NewMatcher builds the Matcher named by mode over needle. For Regex, needle
// is compiled once here and shared read-only by every worker.
func NewMatcher(mode Mode, needle string) (Matcher, error) {
	switch mode {
	case CaseSensitive:
		return newLiteralMatcher([]byte(needle), false), nil
	case CaseInsensitive:
		return newLiteralMatcher(foldASCII([]byte(needle)), true), nil
	case Regex:
		re, err := regexp.Compile(needle)
		if err != nil {
			return nil, err
		}
		return &regexMatcher{re: re}, nil
	default:
		return newLiteralMatcher([]byte(needle), false), nil
	}
}

// literalMatcher implements CaseSensitive and CaseInsensitive with a
// Boyer-Moore-Horspool-style scan: it builds a bad-character skip table
// once, at construction, and reuses it across every line and every worker
// goroutine that shares this Matcher. The table must be built before the
// Matcher is handed to more than one goroutine, since Find never mutates it.
type literalMatcher struct {
	needle []byte
	fold   bool
	skip   [256]int
}

func newLiteralMatcher(needle []byte, fold bool) *literalMatcher {
	m := &literalMatcher{needle: needle, fold: fold}
	n := len(m.needle)
	for i := range m.skip {
		m.skip[i] = n
	}
	for i := 0; i < n-1; i++ {
		m.skip[m.needle[i]] = n - 1 - i
	}
	return m
}

func (m *literalMatcher) Find(line []byte) []Span {
	n := len(m.needle)
	if n == 0 || len(line) < n {
		return nil
	}

	haystack := line
	if m.fold {
		haystack = foldASCII(line)
	}

	var spans []Span
	i := 0
	for i <= len(haystack)-n {
		j := n - 1
		for j >= 0 && haystack[i+j] == m.needle[j] {
			j--
		}
		if j < 0 {
			spans = append(spans, Span{Start: i, End: i + n})
			i += n
			continue
		}
		i += m.skip[haystack[i+n-1]]
	}
	return spans
}

// foldASCII returns a copy of b with bytes 0x41-0x5A mapped to 0x61-0x7A;
// non-ASCII bytes pass through unchanged.
func foldASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

// regexMatcher enumerates all non-overlapping matches of a pre-compiled
// regular expression, skipping zero-length matches to avoid infinite loops.
type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Find(line []byte) []Span {
	var spans []Span
	for _, loc := range m.re.FindAllIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}
