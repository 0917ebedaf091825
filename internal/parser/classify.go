package parser

import (
	"regexp"
	"strings"
)

// Card side labels attached to parsed and merged records.
const (
	SideFront   = "FRONT"
	SideBack    = "BACK"
	SideUnknown = "UNKNOWN"
	SideMerged  = "MERGED"
)

// sideSignal is one weighted keyword indicator. When re is set the keyword
// only counts if the pattern also matches, e.g. "Pin" next to a 6-digit code.
type sideSignal struct {
	keywords []string
	weight   int
	re       *regexp.Regexp
}

var pinCodeSignalRe = regexp.MustCompile(`Pin\s*[:©€+]?\s*\d{6}`)

var frontSignals = []sideSignal{
	{keywords: []string{"FACULTY"}, weight: 3},
	{keywords: []string{"Programme", "Program"}, weight: 2},
	{keywords: []string{"Register"}, weight: 2},
	{keywords: []string{"Valid From", "Valid To"}, weight: 2},
}

var backSignals = []sideSignal{
	{keywords: []string{"Blood Group"}, weight: 3},
	{keywords: []string{"Address"}, weight: 2},
	{keywords: []string{"Pin"}, weight: 2, re: pinCodeSignalRe},
	{keywords: []string{"Cont.No", "Contact"}, weight: 2},
	{keywords: []string{"Date of Birth", "Birth"}, weight: 2},
}

func scoreSignals(text string, signals []sideSignal) int {
	score := 0
	for _, s := range signals {
		hit := false
		for _, kw := range s.keywords {
			if strings.Contains(text, kw) {
				hit = true
				break
			}
		}
		if hit && s.re != nil {
			hit = s.re.MatchString(text)
		}
		if hit {
			score += s.weight
		}
	}
	return score
}

// ClassifySide scores normalized text against front and back keyword
// signatures. A tie with both scores positive resolves to BACK; UNKNOWN only
// arises when neither side scores. Callers depend on this exact rule.
func ClassifySide(text string) string {
	front := scoreSignals(text, frontSignals)
	back := scoreSignals(text, backSignals)
	if front > back {
		return SideFront
	}
	if back > 0 {
		return SideBack
	}
	return SideUnknown
}
