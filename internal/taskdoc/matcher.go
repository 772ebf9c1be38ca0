package taskdoc

import (
	"regexp"
	"strings"
)

// DefaultGlyphs are the check mark spellings recognized in front of "complete".
// The second entry is U+2705 encoded as UTF-8 and decoded as Windows-1252.
var DefaultGlyphs = []string{"✅", "âœ…"}

// Matcher detects completion markers in a line.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher builds a Matcher for the default glyphs plus any extras.
func NewMatcher(extraGlyphs ...string) *Matcher {
	seen := make(map[string]bool)
	var alts []string
	for _, g := range append(append([]string{}, DefaultGlyphs...), extraGlyphs...) {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		alts = append(alts, regexp.QuoteMeta(g))
	}

	pattern := "(?i)(?:(?:" + strings.Join(alts, "|") + `)\s*complete|` + "`" + `\s*\[\s*complete\s*\]\s*` + "`)"
	return &Matcher{re: regexp.MustCompile(pattern)}
}

// Match reports whether line carries a completion marker.
func (m *Matcher) Match(line string) bool {
	if m == nil {
		return defaultMatcher.re.MatchString(line)
	}
	return m.re.MatchString(line)
}

var defaultMatcher = NewMatcher()
