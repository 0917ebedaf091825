package parser

import (
	"regexp"
	"strings"
)

// candidate is one provisional field value with its confidence score and the
// index of the pattern that produced it.
type candidate struct {
	Value      string
	Confidence int
	Pattern    int
}

var unexpectedCharRe = regexp.MustCompile(`[^a-zA-Z0-9\s@.\-+()&:/,]`)

// scoreConfidence rates an extracted value. The score rewards value shape
// and pattern properties, not document context; it replicates a tuned
// heuristic and its exact weights are relied on by the tie-break rule.
func scoreConfidence(value, expr string) int {
	if strings.TrimSpace(value) == "" {
		return 0
	}
	score := 50
	if n := len(value); n >= 3 && n <= 100 {
		score += 10
	}
	if strings.Contains(expr, "(?i)") {
		score += 5
	}
	if strings.Contains(expr, `\s*`) {
		score += 5
	}
	if !unexpectedCharRe.MatchString(value) {
		score += 10
	}
	if strings.TrimSpace(value) == value {
		score += 5
	}
	return score
}

// extractBest tries every pattern in order and keeps the candidate with the
// strictly highest confidence. On equal confidence the earlier pattern wins,
// making table order a deterministic tie-break. The value is the last
// capturing group of the match.
func extractBest(text string, patterns []pattern) (candidate, bool) {
	var best candidate
	found := false
	for i, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value := m[len(m)-1]
		conf := scoreConfidence(value, p.expr)
		if !found || conf > best.Confidence {
			best = candidate{Value: value, Confidence: conf, Pattern: i}
			found = true
		}
	}
	return best, found
}

// extractField resolves one field to its validated canonical value, or ""
// when nothing matched or the winning candidate failed validation.
func extractField(text string, patterns []pattern, kind FieldKind) string {
	c, ok := extractBest(text, patterns)
	if !ok {
		return ""
	}
	return validateField(kind, c.Value)
}
