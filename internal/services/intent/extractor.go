package intent

import (
	"regexp"
	"strings"
)

// Shape patterns for isolating an arithmetic substring. Tried in order;
// the first pattern with any match supplies the candidate set, and the
// longest candidate of that pattern wins. The generic run sits last so a
// precise shape is always preferred when present.
var exprPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`),
	regexp.MustCompile(`\d+\s*%\s*of\s*\d+`),
	regexp.MustCompile(`sqrt\s*\([^)]+\)`),
	regexp.MustCompile(`sin\s*\([^)]+\)|cos\s*\([^)]+\)|tan\s*\([^)]+\)`),
	regexp.MustCompile(`[\d+\-*/().\s]+`),
}

// ExtractExpression isolates the arithmetic substring of a message for
// the calculation capability. Returns false if no shape matches.
func ExtractExpression(message string) (string, bool) {
	for _, p := range exprPatterns {
		matches := p.FindAllString(message, -1)
		if len(matches) == 0 {
			continue
		}
		longest := matches[0]
		for _, m := range matches[1:] {
			if len(m) > len(longest) {
				longest = m
			}
		}
		expr := strings.TrimSpace(longest)
		if expr == "" {
			continue
		}
		return expr, true
	}
	return "", false
}
