package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySide(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"front keywords",
			"FACULTY OF ENGINEERING & TECHNOLOGY Name: JOHN Programme: B.Tech Register No: AB1234567890 Valid From: June 2022",
			SideFront,
		},
		{
			"back keywords",
			"Blood Group: B +ve Address: 12 Gandhi Street Pin: 600036 Perm. Cont.No: 9876543210 Date of Birth: 15-Apr-2003",
			SideBack,
		},
		{"tie resolves to back", "Register Address something", SideBack},
		{"no signals", "hello world, nothing card-like here", SideUnknown},
		{"pin keyword without six digits stays unknown", "Pin: 42", SideUnknown},
		{"pin keyword with six digits counts for back", "Pin: 600036", SideBack},
		{"contact alone is back", "Emergency Contact 9876543210", SideBack},
		{"empty", "", SideUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySide(tt.text))
		})
	}
}

func TestClassifySideDeterministic(t *testing.T) {
	text := "Register Address Pin: 600036 Valid From: June 2022"
	first := ClassifySide(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifySide(text))
	}
}
