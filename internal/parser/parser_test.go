package parser

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idscan/internal/models"
)

const (
	testInstitution = "SRM INSTITUTE OF SCIENCE & TECHNOLOGY"
	testFaculty     = "FACULTY OF ENGINEERING & TECHNOLOGY"

	frontText = "SRM INSTITUTE OF SCIENCE & TECHNOLOGY FACULTY OF ENGINEERING & TECHNOLOGY " +
		"Name: JOHN SMITH Programme: B.Tech (CSE) Register No: AB1234567890 " +
		"Valid From: June 2022 To: May 2026"

	backText = "Blood Group: B +ve Date of Birth: 15/Apr/2003 " +
		"Address: 12 Gandhi Street, Chennai Pin: 600036 " +
		"Perm. Cont.No: 9876543210 Emg. Cont.No: 9123456780 " +
		"E-mail ID: John.Smith@Example.com"
)

func newTestService() *Service {
	return New(testInstitution, testFaculty, zerolog.Nop())
}

func TestParseFrontSide(t *testing.T) {
	data := newTestService().Parse(frontText)
	require.NotNil(t, data)

	assert.Equal(t, SideFront, data.CardType)
	assert.Equal(t, testInstitution, data.Institution)
	assert.Equal(t, testFaculty, data.Faculty)
	assert.Equal(t, "JOHN SMITH", data.Name)
	assert.Equal(t, "B.Tech (CSE)", data.Programme)
	assert.Equal(t, "AB1234567890", data.RegisterNumber)
	assert.Equal(t, "June 2022", data.ValidFrom)
	assert.Equal(t, "May 2026", data.ValidTo)
	assert.Equal(t, frontText, data.RawText)

	// Back-only fields stay empty on a front side.
	assert.Empty(t, data.BloodGroup)
	assert.Empty(t, data.Address)
	assert.Empty(t, data.Pin)
}

func TestParseBackSide(t *testing.T) {
	data := newTestService().Parse(backText)
	require.NotNil(t, data)

	assert.Equal(t, SideBack, data.CardType)
	assert.Equal(t, "B +ve", data.BloodGroup)
	assert.Equal(t, "15-Apr-2003", data.DateOfBirth)
	assert.Equal(t, "12 Gandhi Street, Chennai", data.Address)
	assert.Equal(t, "600036", data.Pin)
	assert.Equal(t, "9876543210", data.PermanentContact)
	assert.Equal(t, "9123456780", data.EmergencyContact)
	assert.Equal(t, "john.smith@example.com", data.Email)
	assert.Equal(t, backText, data.RawText)

	// Front-only fields stay empty on a back side.
	assert.Empty(t, data.Name)
	assert.Empty(t, data.RegisterNumber)
	assert.Empty(t, data.Institution)
}

func TestParseGlyphNoiseRepaired(t *testing.T) {
	noisy := "FACULTY OF ENGINEERING Name© JOHN SMITH Programme© 8 Tech (CSE) " +
		"Register No€ AB1234567890 Valid From© June 2022 To© May 2026"
	data := newTestService().Parse(noisy)

	assert.Equal(t, SideFront, data.CardType)
	assert.Equal(t, "JOHN SMITH", data.Name)
	assert.Equal(t, "B.Tech (CSE)", data.Programme)
	assert.Equal(t, "AB1234567890", data.RegisterNumber)
}

func TestParseUnknownSide(t *testing.T) {
	data := newTestService().Parse("grocery list: milk eggs bread")
	require.NotNil(t, data)

	assert.Equal(t, SideUnknown, data.CardType)
	assert.Equal(t, "grocery list: milk eggs bread", data.RawText)
	assert.Empty(t, data.Name)
	assert.Empty(t, data.RegisterNumber)
	assert.Empty(t, data.BloodGroup)
}

func TestParseEmptyInput(t *testing.T) {
	data := newTestService().Parse("")
	require.NotNil(t, data)
	assert.Equal(t, SideUnknown, data.CardType)
	assert.Equal(t, "", data.RawText)
}

func TestMerge(t *testing.T) {
	svc := newTestService()
	front := svc.Parse(frontText)
	back := svc.Parse(backText)

	merged := svc.Merge(front, back)
	require.NotNil(t, merged)

	assert.Equal(t, SideMerged, merged.CardType)
	assert.Equal(t, "JOHN SMITH", merged.Name)
	assert.Equal(t, "AB1234567890", merged.RegisterNumber)
	assert.Equal(t, "B.Tech (CSE)", merged.Programme)
	assert.Equal(t, testInstitution, merged.Institution)
	assert.Equal(t, "B +ve", merged.BloodGroup)
	assert.Equal(t, "15-Apr-2003", merged.DateOfBirth)
	assert.Equal(t, "600036", merged.Pin)
	assert.Equal(t, "john.smith@example.com", merged.Email)

	assert.Equal(t, "FRONT:\n"+frontText+"\n\nBACK:\n"+backText, merged.RawText)
}

func TestMergeDoesNotCrossContaminate(t *testing.T) {
	svc := newTestService()
	front := &models.CardData{Name: "JOHN SMITH", Pin: "111111"}
	back := &models.CardData{BloodGroup: "O +ve", Name: "WRONG NAME"}

	merged := svc.Merge(front, back)
	assert.Equal(t, "JOHN SMITH", merged.Name, "name comes only from front")
	assert.Equal(t, "O +ve", merged.BloodGroup)
	assert.Empty(t, merged.Pin, "pin comes only from back")
}

func TestMergeNilSides(t *testing.T) {
	svc := newTestService()

	merged := svc.Merge(nil, nil)
	require.NotNil(t, merged)
	assert.Equal(t, SideMerged, merged.CardType)
	assert.Equal(t, "", merged.RawText)
	assert.Empty(t, merged.Name)

	back := &models.CardData{BloodGroup: "B +ve", RawText: "back raw"}
	merged = svc.Merge(nil, back)
	assert.Equal(t, "B +ve", merged.BloodGroup)
	assert.Equal(t, "BACK:\nback raw", merged.RawText)
}

func TestParseDeterministic(t *testing.T) {
	svc := newTestService()
	first := svc.Parse(frontText)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.Parse(frontText))
	}
}

func TestBoundInput(t *testing.T) {
	assert.Equal(t, "short", boundInput("short"))

	exact := strings.Repeat("a", maxInputLen)
	assert.Equal(t, exact, boundInput(exact))

	over := strings.Repeat("a", maxInputLen-1) + "éé"
	got := boundInput(over)
	assert.LessOrEqual(t, len(got), maxInputLen)
	assert.True(t, strings.HasSuffix(got, "é") || strings.HasSuffix(got, "a"))
	assert.NotContains(t, got, "�")

	bounded := boundInput(strings.Repeat("x", maxInputLen+500))
	assert.Len(t, bounded, maxInputLen)
}

func TestCleanAddress(t *testing.T) {
	assert.Equal(t, "12 Gandhi Street, Chennai",
		cleanAddress(`12 Gandhi Street\\Chennai`))
	assert.Equal(t, "12 Gandhi Street, Chennai",
		cleanAddress("12 Gandhi Street,  , Chennai"))
	assert.Equal(t, "12 Gandhi Street",
		cleanAddress("12 Gandhi Street Date of Birth: 15-Apr-2003"))
}
