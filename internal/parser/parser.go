// Package parser turns noisy OCR text from a photographed student ID card
// into a validated CardData record. Extraction is best-effort and bounded:
// a field that cannot be read resolves to the empty string, never an error.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"idscan/internal/models"
)

// maxInputLen bounds the text handed to the pattern tables. OCR output for a
// card fits comfortably; anything larger is degenerate input. Matching is
// RE2, so time stays linear in this bound.
const maxInputLen = 20000

// Service parses single card sides and merges the two sides of one card.
// It is stateless and safe for concurrent use.
type Service struct {
	institution string
	faculty     string
	log         zerolog.Logger
}

// New returns a parser that stamps front sides with the given institution
// and faculty names, which are printed on the card but not reliably
// extractable from OCR output.
func New(institution, faculty string, log zerolog.Logger) *Service {
	return &Service{institution: institution, faculty: faculty, log: log}
}

// Parse classifies one side of a card and extracts the fields expected on
// that side. The raw input is kept on the record for audit.
func (s *Service) Parse(ocrText string) *models.CardData {
	data := &models.CardData{}

	bounded := boundInput(ocrText)
	cleaned := Normalize(bounded)
	s.log.Debug().Int("length", len(cleaned)).Msg("processing OCR text")

	side := ClassifySide(cleaned)
	data.CardType = side

	switch side {
	case SideFront:
		s.parseFront(cleaned, data)
	case SideBack:
		s.parseBack(cleaned, data)
	default:
		s.log.Warn().Msg("unable to determine card side from text")
	}

	data.RawText = bounded
	return data
}

func (s *Service) parseFront(text string, data *models.CardData) {
	s.log.Debug().Msg("parsing front side")

	data.Institution = s.institution
	data.Faculty = s.faculty
	data.Name = extractField(text, namePatterns, FieldName)
	data.Programme = extractField(text, programmePatterns, FieldProgramme)
	data.RegisterNumber = extractField(text, registerNumberPatterns, FieldRegisterNumber)
	data.ValidFrom = extractField(text, validFromPatterns, FieldDate)
	data.ValidTo = extractField(text, validToPatterns, FieldDate)
}

func (s *Service) parseBack(text string, data *models.CardData) {
	s.log.Debug().Msg("parsing back side")

	data.BloodGroup = extractField(text, bloodGroupPatterns, FieldBloodGroup)
	if c, ok := extractBest(text, dateOfBirthPatterns); ok {
		data.DateOfBirth = NormalizeDateOfBirth(strings.TrimSpace(c.Value))
	}
	data.Address = extractAddress(text)
	data.Pin = extractField(text, pinPatterns, FieldPinCode)
	data.PermanentContact = extractField(text, permanentContactPatterns, FieldPhone)
	data.EmergencyContact = extractField(text, emergencyContactPatterns, FieldPhone)
	data.Email = extractField(text, emailPatterns, FieldEmail)
}

var (
	markerTailRe    = regexp.MustCompile(`(?i)(Blood Group|Date of Birth|DOB|Birth)[^\n]*`)
	backslashRunRe  = regexp.MustCompile(`\\+`)
	repeatedCommaRe = regexp.MustCompile(`,\s*,`)
)

// extractAddress pulls the free-text span between the "Address" label and
// the next Pin or contact marker, falling back to the span between the birth
// line and Pin.
func extractAddress(text string) string {
	for _, re := range []*regexp.Regexp{addressPrimaryRe, addressFallbackRe} {
		if m := re.FindStringSubmatch(text); len(m) >= 2 {
			addr := cleanAddress(m[1])
			if isValidAddress(addr) {
				return addr
			}
		}
	}
	return ""
}

func cleanAddress(address string) string {
	address = markerTailRe.ReplaceAllString(address, "")
	address = backslashRunRe.ReplaceAllString(address, ", ")
	address = whitespaceRe.ReplaceAllString(address, " ")
	address = repeatedCommaRe.ReplaceAllString(address, ",")
	return strings.TrimSpace(address)
}

// Merge combines a parsed front and back side into one MERGED record.
// Front-only fields come solely from front, back-only fields solely from
// back; either side may be nil and contributes nothing.
func (s *Service) Merge(front, back *models.CardData) *models.CardData {
	merged := &models.CardData{}

	if front != nil {
		merged.Name = front.Name
		merged.RegisterNumber = front.RegisterNumber
		merged.Programme = front.Programme
		merged.ValidFrom = front.ValidFrom
		merged.ValidTo = front.ValidTo
		merged.Institution = front.Institution
		merged.Faculty = front.Faculty
	}
	if back != nil {
		merged.BloodGroup = back.BloodGroup
		merged.DateOfBirth = back.DateOfBirth
		merged.Address = back.Address
		merged.Pin = back.Pin
		merged.PermanentContact = back.PermanentContact
		merged.EmergencyContact = back.EmergencyContact
		merged.Email = back.Email
	}

	var raw strings.Builder
	if front != nil {
		raw.WriteString("FRONT:\n")
		raw.WriteString(front.RawText)
		raw.WriteString("\n\n")
	}
	if back != nil {
		raw.WriteString("BACK:\n")
		raw.WriteString(back.RawText)
	}
	merged.RawText = raw.String()
	merged.CardType = SideMerged

	s.log.Info().Msg("merged front and back card data")
	return merged
}

// boundInput truncates oversized input at a rune boundary.
func boundInput(text string) string {
	if len(text) <= maxInputLen {
		return text
	}
	cut := maxInputLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
