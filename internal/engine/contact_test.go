package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-screening/internal/engine"
)

func TestImportProfile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  engine.Profile
	}{
		{
			name:  "Dashed date, male with identity",
			input: "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John\r\nBDAY:1957-03-09\r\nGENDER:M;he/him\r\nEND:VCARD\r\n",
			want:  engine.Profile{BirthMonth: "Mar", BirthDay: "9", BirthYear: "1957", Sex: engine.SexMale},
		},
		{
			name:  "Basic date, no gender",
			input: "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Alex\r\nBDAY:20001231\r\nEND:VCARD\r\n",
			want:  engine.Profile{BirthMonth: "Dec", BirthDay: "31", BirthYear: "2000"},
		},
		{
			name:  "Unrecognized gender stays unset",
			input: "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Sam\r\nBDAY:1990-07-04\r\nGENDER:O\r\nEND:VCARD\r\n",
			want:  engine.Profile{BirthMonth: "Jul", BirthDay: "4", BirthYear: "1990"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ImportProfile(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestImportProfile_SkipsUnusableCards takes the first card with a full birth date.
func TestImportProfile_SkipsUnusableCards(t *testing.T) {
	input := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:No Birthday\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:No Year\r\nBDAY:--0412\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Target\r\nBDAY:1985-04-12\r\nGENDER:F\r\nEND:VCARD\r\n"

	got, err := engine.ImportProfile(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "1985", got.BirthYear)
	assert.Equal(t, engine.SexFemale, got.Sex)
}

func TestImportProfile_NoBirthday(t *testing.T) {
	_, err := engine.ImportProfile(strings.NewReader("BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Nobody\r\nEND:VCARD\r\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	_, err = engine.ImportProfile(strings.NewReader(""))
	assert.ErrorIs(t, err, engine.ErrInvalidDate)
}

// TestImportProfile_FeedsGenerator checks an imported profile is directly usable.
func TestImportProfile_FeedsGenerator(t *testing.T) {
	p, err := engine.ImportProfile(strings.NewReader(sampleCard))
	require.NoError(t, err)

	recs, err := newGenerator().Generate(p)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
}
