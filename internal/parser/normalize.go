package parser

import (
	"regexp"
	"strings"
)

var (
	glyphColonRe  = regexp.MustCompile(`[©€]`)
	btechRepairRe = regexp.MustCompile(`8\s*Tech`)
	bloodRepairRe = regexp.MustCompile(`(?i)4VE`)
	aprilRepairRe = regexp.MustCompile(`(?i)apri1`)
	octRepairRe   = regexp.MustCompile(`(?i)0ct`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize repairs common OCR misreads and collapses whitespace noise.
// It is total and idempotent; empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = glyphColonRe.ReplaceAllString(text, ":")
	text = btechRepairRe.ReplaceAllString(text, "B.Tech")
	text = bloodRepairRe.ReplaceAllString(text, "B +ve")
	text = aprilRepairRe.ReplaceAllString(text, "April")
	text = octRepairRe.ReplaceAllString(text, "Oct")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
