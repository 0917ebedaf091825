package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JOHN SMITH", "JOHN SMITH"},
		{"  JOHN SMITH  ", "JOHN SMITH"},
		{"Priya Natarajan", "Priya Natarajan"},
		{"JOHN", ""},  // lone all-uppercase token
		{"John", ""},  // lone short word
		{"Johny", "Johny"},
		{"AB", ""},
		{"J0HN SMITH", ""}, // digit in name
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validateField(FieldName, tt.in), "input %q", tt.in)
	}
}

func TestValidateFieldRegisterNumber(t *testing.T) {
	assert.Equal(t, "AB1234567890", validateField(FieldRegisterNumber, "AB1234567890"))
	assert.Equal(t, "RA12345678", validateField(FieldRegisterNumber, "RA12345678"))
	assert.Equal(t, "", validateField(FieldRegisterNumber, "ab1234567890"), "lowercase prefix")
	assert.Equal(t, "", validateField(FieldRegisterNumber, "AB1234567"), "too few digits")
	assert.Equal(t, "", validateField(FieldRegisterNumber, "A1234567890"), "single letter prefix")
	assert.Equal(t, "", validateField(FieldRegisterNumber, "AB1234567890123"), "too many digits")
}

func TestValidateFieldPinCode(t *testing.T) {
	assert.Equal(t, "600036", validateField(FieldPinCode, "600036"))
	assert.Equal(t, "", validateField(FieldPinCode, "60003"))
	assert.Equal(t, "", validateField(FieldPinCode, "6000361"))
	assert.Equal(t, "", validateField(FieldPinCode, "60003a"))
}

func TestValidateFieldPhone(t *testing.T) {
	assert.Equal(t, "9876543210", validateField(FieldPhone, "9876543210"))
	assert.Equal(t, "9876543210", validateField(FieldPhone, "98765-43210"), "separators stripped")
	assert.Equal(t, "9876543210", validateField(FieldPhone, "(987) 654 3210"))
	assert.Equal(t, "", validateField(FieldPhone, "12345"))
	assert.Equal(t, "", validateField(FieldPhone, "98765432101"))
}

func TestValidateFieldEmail(t *testing.T) {
	assert.Equal(t, "john.smith@example.com", validateField(FieldEmail, "John.Smith@Example.COM"), "lowercased")
	assert.Equal(t, "a+b@uni.ac.in", validateField(FieldEmail, "a+b@uni.ac.in"))
	assert.Equal(t, "", validateField(FieldEmail, "bad@x"))
	assert.Equal(t, "", validateField(FieldEmail, "no-at-sign.example.com"))
}

func TestValidateFieldAddress(t *testing.T) {
	assert.Equal(t, "12 Main Street, Springfield", validateField(FieldAddress, "12 Main Street, Springfield"))
	assert.Equal(t, "", validateField(FieldAddress, "123"), "too short")
	assert.Equal(t, "", validateField(FieldAddress, "!!!???...///"), "no letter run")
	assert.Equal(t, "", validateField(FieldAddress, "ab, cd. !!"), "no long letter run")
}

func TestValidateFieldPassThrough(t *testing.T) {
	assert.Equal(t, "B.Tech (CSE)", validateField(FieldProgramme, "  B.Tech (CSE)  "))
	assert.Equal(t, "June 2022", validateField(FieldGeneric, "June 2022"))
}

func TestNormalizeBloodGroup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"4VE", "B +ve"},
		{"B +ve", "B +ve"},
		{"O+", "O +ve"},
		{"0+", "O +ve"},
		{"AB -ve", "AB -ve"},
		{"A  +  ve", "A +ve"},
		{"B+v€", "B +ve"},
		{"unreadable", "unreadable"}, // cleaned but never rejected
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBloodGroup(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeDateOfBirth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"15-Apr-2003", "15-Apr-2003"},
		{"15/Apr/2003", "15-Apr-2003"},
		{`15\Apr\2003`, "15-Apr-2003"},
		{"2-April-2003", "02-Apr-2003"},
		{"15-04-2003", "15-Apr-2003"},
		{"15/4/2003", "15-Apr-2003"},
		{"99-99-9999", "99-99-9999"}, // unparseable stays separator-normalized
		{"99/99/9999", "99-99-9999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDateOfBirth(tt.in), "input %q", tt.in)
	}
}
