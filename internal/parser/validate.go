package parser

import (
	"regexp"
	"strings"
	"time"
)

// FieldKind selects the validation and canonicalization rule for a field.
type FieldKind int

const (
	FieldName FieldKind = iota
	FieldRegisterNumber
	FieldProgramme
	FieldDate
	FieldBloodGroup
	FieldPinCode
	FieldPhone
	FieldEmail
	FieldAddress
	FieldGeneric
)

var (
	registerNumberRe = regexp.MustCompile(`^[A-Z]{2}\d{8,12}$`)
	pinCodeRe        = regexp.MustCompile(`^\d{6}$`)
	nonDigitRe       = regexp.MustCompile(`\D`)
	emailRe          = regexp.MustCompile(`^[\w._%+-]+@[\w.-]+\.\w{2,}$`)
	lettersSpacesRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	upperSpacesRe    = regexp.MustCompile(`^[A-Z\s]+$`)
	letterRunRe      = regexp.MustCompile(`[A-Za-z]{3,}`)
	nonAlnumRe       = regexp.MustCompile(`[^A-Za-z0-9]`)
	bloodShapeRe     = regexp.MustCompile(`^[ABO]+\s*[+\-]`)
	nonABORe         = regexp.MustCompile(`[^ABO]`)
)

// validateField accepts and canonicalizes a candidate value per field kind,
// or rejects it to the empty string. It never errors.
func validateField(kind FieldKind, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	switch kind {
	case FieldName:
		if isValidName(v) {
			return v
		}
		return ""
	case FieldRegisterNumber:
		if registerNumberRe.MatchString(v) {
			return v
		}
		return ""
	case FieldPinCode:
		if pinCodeRe.MatchString(v) {
			return v
		}
		return ""
	case FieldPhone:
		digits := nonDigitRe.ReplaceAllString(v, "")
		if len(digits) == 10 {
			return digits
		}
		return ""
	case FieldEmail:
		if emailRe.MatchString(v) {
			return strings.ToLower(v)
		}
		return ""
	case FieldBloodGroup:
		return NormalizeBloodGroup(v)
	case FieldAddress:
		if isValidAddress(v) {
			return v
		}
		return ""
	default:
		// PROGRAMME, DATE and GENERIC pass through trimmed.
		return v
	}
}

// isValidName accepts letters-and-spaces names of plausible shape: a single
// all-uppercase token is treated as OCR noise, and a lone word must be at
// least 5 characters.
func isValidName(name string) bool {
	if len(name) < 3 {
		return false
	}
	if !lettersSpacesRe.MatchString(name) {
		return false
	}
	words := strings.Fields(name)
	if upperSpacesRe.MatchString(name) && len(words) < 2 {
		return false
	}
	return len(words) >= 2 || len(name) >= 5
}

func isValidAddress(address string) bool {
	if len(address) < 10 {
		return false
	}
	if !letterRunRe.MatchString(address) {
		return false
	}
	return len(nonAlnumRe.ReplaceAllString(address, "")) >= 5
}

// NormalizeBloodGroup repairs blood-group misreads and canonicalizes to
// "<TYPE> <sign>ve". The compound "4VE" fix runs before the bare-digit
// substitutions so it is not mangled into "AVE" first. Input that still does
// not look like a blood group is returned cleaned but otherwise unchanged,
// never rejected to empty.
func NormalizeBloodGroup(bloodGroup string) string {
	if bloodGroup == "" {
		return ""
	}
	bloodGroup = strings.ReplaceAll(bloodGroup, "4VE", "B +ve")
	bloodGroup = strings.ReplaceAll(bloodGroup, "4", "A")
	bloodGroup = strings.ReplaceAll(bloodGroup, "0", "O")
	bloodGroup = strings.ReplaceAll(bloodGroup, "€", "e")
	bloodGroup = strings.TrimSpace(whitespaceRe.ReplaceAllString(bloodGroup, " "))

	if bloodShapeRe.MatchString(bloodGroup) {
		bType := nonABORe.ReplaceAllString(bloodGroup, "")
		sign := "-"
		if strings.Contains(bloodGroup, "+") {
			sign = "+"
		}
		return bType + " " + sign + "ve"
	}
	return bloodGroup
}

// dobLayouts is the ordered list of accepted day-month-year shapes. The
// slash form is listed after separator normalization makes it unreachable,
// kept so the accepted shapes read as a complete table.
var dobLayouts = []string{
	"2-Jan-2006",
	"2-January-2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-1-2006",
	"2/1/2006",
}

// NormalizeDateOfBirth reformats a date of birth to canonical dd-Mon-yyyy.
// Separators are normalized to hyphens first; if no layout parses, the
// separator-normalized string is returned unchanged.
func NormalizeDateOfBirth(dob string) string {
	if dob == "" {
		return ""
	}
	dob = strings.ReplaceAll(dob, "\\", "-")
	dob = strings.ReplaceAll(dob, "/", "-")
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			return t.Format("02-Jan-2006")
		}
	}
	return dob
}
