package scoring

import (
	"regexp"
	"strings"
	"sync"
)

// Matcher performs case-insensitive whole-word keyword matching. Patterns are
// compiled once per term and cached; terms with regex metacharacters are
// escaped so an unsafe keyword (e.g. "$100k") never breaks compilation.
type Matcher struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func NewMatcher() *Matcher {
	return &Matcher{patterns: map[string]*regexp.Regexp{}}
}

// Match reports whether term occurs as a whole word in text. Substring hits
// inside larger words do not count: "eth" does not match "method".
func (m *Matcher) Match(text, term string) bool {
	re := m.pattern(term)
	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// MatchedTerms returns the terms from the list that match text, preserving
// list order. Each term counts once regardless of occurrence count.
func (m *Matcher) MatchedTerms(text string, terms []string) []string {
	var matched []string
	for _, term := range terms {
		if m.Match(text, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

func (m *Matcher) pattern(term string) *regexp.Regexp {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" {
		return nil
	}
	m.mu.RLock()
	re, ok := m.patterns[key]
	m.mu.RUnlock()
	if ok {
		return re
	}

	re, err := regexp.Compile(wordPattern(key))
	if err != nil {
		return nil
	}
	m.mu.Lock()
	m.patterns[key] = re
	m.mu.Unlock()
	return re
}

// wordPattern builds the whole-word pattern for a term. \b only asserts at a
// word/non-word transition, so a term edge that is itself a non-word rune
// (e.g. "$" or the "$" in "$100k") drops the boundary on that side; RE2 has
// no lookaround to express it otherwise.
func wordPattern(term string) string {
	var sb strings.Builder
	sb.WriteString("(?i)")
	runes := []rune(term)
	if isWordRune(runes[0]) {
		sb.WriteString(`\b`)
	}
	sb.WriteString(regexp.QuoteMeta(term))
	if isWordRune(runes[len(runes)-1]) {
		sb.WriteString(`\b`)
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
