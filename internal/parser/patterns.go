package parser

import (
	"regexp"

	"github.com/rs/zerolog/log"
)

// pattern pairs a compiled expression with its source text. Confidence
// scoring inspects the source for flags like (?i) and \s*, so both are kept.
type pattern struct {
	expr string
	re   *regexp.Regexp
}

// compilePatterns builds an immutable ordered pattern table. A malformed
// expression is logged and skipped; the rest of the table stays usable.
func compilePatterns(exprs ...string) []pattern {
	out := make([]pattern, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			log.Error().Err(err).Str("pattern", e).Msg("skipping malformed field pattern")
			continue
		}
		out = append(out, pattern{expr: e, re: re})
	}
	return out
}

// Per-field pattern tables, ordered from most to least specific. Order is a
// contract: on equal confidence the earlier pattern's match is kept.
//
// The regexp package has no lookahead or lookbehind, so field delimiters are
// consumed by non-capturing groups and the value is always taken from the
// last capturing group of the match.
var (
	namePatterns = compilePatterns(
		`(?i)Name\s*[:©€]?\s*([A-Z][A-Z\s]{2,50}?)(?:\s*(?:Programme|Register)|$)`,
		`(?i)Name[^:]*[:©€]\s*([A-Z][A-Z\s]+?)\s*Programme`,
		`TECHNOLOGY\s{1,30}([A-Z][A-Z\s]{2,50}?)\s*(?:Programme|Register|Name)`,
	)

	programmePatterns = compilePatterns(
		`(?i)Programme\s*[:©€]?\s*([A-Z0-9.()\s&-]+?)(?:\s*(?:Register|Valid)|$)`,
		`(?i)Program\s*[:©€]?\s*([A-Z0-9.()\s&-]+?)(?:\s*(?:Register|Valid)|$)`,
		`(?i)[:©€]\s*(B\.?\s*Tech[^\n]*)`,
		`(?i)(B\.?\s*Tech\s*\([^)]+\))`,
	)

	registerNumberPatterns = compilePatterns(
		`(?i)Register\s*No\.?\s*[:©€]?\s*([A-Z]{2}\d{8,12})`,
		`(?i)Reg\.?\s*No\.?\s*[:©€]?\s*([A-Z]{2}\d{8,12})`,
		`(?i)Register\s*Number\s*[:©€]?\s*([A-Z]{2}\d{8,12})`,
		`([A-Z]{2}\d{10})`,
	)

	validFromPatterns = compilePatterns(
		`(?i)Valid\s*From\s*[:©€]?\s*([A-Za-z]+[-\s]?\d{4})`,
		`(?i)From\s*[:©€]?\s*([A-Za-z]{3,9}[-\s]?\d{4})`,
	)

	validToPatterns = compilePatterns(
		`(?i)To\s*[:©€]?\s*([A-Za-z]+[-\s]?\d{4})`,
		`(?i)Valid\s*To\s*[:©€]?\s*([A-Za-z]+[-\s]?\d{4})`,
	)

	bloodGroupPatterns = compilePatterns(
		`(?i)Blood\s*Group\s*[:©€]?\s*([ABO]+\s*[+\-]\s*(?:ve|VE)?)`,
		`(?i)Blood\s*Group\s*[:©€]?\s*([ABO]\s*[+\-])`,
		`([ABO]+\s*[+\-]\s*(?:ve|VE)?)`,
		`([0-9ABO]+\s*[vV+\-]?[eE€]?)`,
	)

	dateOfBirthPatterns = compilePatterns(
		`(?i)Date\s*of\s*Birth\s*[:©€]?\s*(\d{1,2}[-/\\]\w{3,9}[-/\\]\d{4})`,
		`(?i)Birth\s*[:©€]?\s*(\d{1,2}[-/\\]\w{3,9}[-/\\]\d{4})`,
		`(?i)DOB\s*[:©€]?\s*(\d{1,2}[-/\\]\w{3,9}[-/\\]\d{4})`,
		`(\d{1,2}\s*[-/\\]?\s*[A-Za-z]{3,9}\s*[-/\\]?\s*\d{4})`,
	)

	pinPatterns = compilePatterns(
		`(?i)Pin\s*(?:Code)?\s*[:©€+]?\s*(\d{6})`,
		`(?i)Pincode\s*[:©€+]?\s*(\d{6})`,
		`(?i)Pin\s*[:©€+]?\s*(\d{6})`,
		`(\d{6})(?:\s|$)`,
	)

	permanentContactPatterns = compilePatterns(
		`(?i)Perm\.?\s*Cont\.?\s*No\.?\s*[:©€]?\s*(\d{10})`,
		`(?i)Permanent\s*Contact\s*[:©€]?\s*(\d{10})`,
		`(?i)Perm\s*[:©€]?\s*(\d{10})`,
	)

	emergencyContactPatterns = compilePatterns(
		`(?i)Emg\.?\s*Cont\.?\s*No\.?\s*[:©€]?\s*(\d{10})`,
		`(?i)Emergency\s*Contact\s*[:©€]?\s*(\d{10})`,
		`(?i)Emg\s*[:©€]?\s*(\d{10})`,
	)

	emailPatterns = compilePatterns(
		`(?i)E[-\s]?mail\s*ID\s*[:©€]?\s*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`,
		`(?i)Email\s*[:©€]?\s*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`,
		`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`,
	)

	// Address extraction is span-based rather than label-to-token, so it has
	// its own primary and fallback patterns; see extractAddress.
	addressPrimaryRe  = regexp.MustCompile(`(?i)Address\s*[:©€]?\s*([\s\S]{10,200}?)(?:Pin\s*[:©€]?\s*\d{6}|Perm\.?\s*Cont|$)`)
	addressFallbackRe = regexp.MustCompile(`(?i)(?:Birth|DOB)[^\n]*\n\s*([\s\S]{10,200}?)(?:Pin\s*[:©€]?\s*\d{6})`)
)
