package validation

import (
	"strings"
	"testing"

	"github.com/jiseti/jiseti-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RecordInput {
	return RecordInput{
		Type:        models.TypeRedFlag,
		Title:       "corruption",
		Description: "Officials diverted funds meant for road repairs",
	}
}

func TestValidateRecordAcceptsEveryWhitelistedTitle(t *testing.T) {
	cases := map[string][]string{
		models.TypeRedFlag:      RedFlagCategories,
		models.TypeIntervention: InterventionCategories,
	}

	for recordType, titles := range cases {
		for _, title := range titles {
			// Input casing and surrounding whitespace must not matter.
			in := validInput()
			in.Type = recordType
			in.Title = "  " + strings.ToUpper(title) + "  "

			out, err := ValidateRecord(in)
			require.NoError(t, err, "type %s title %q", recordType, title)
			assert.Equal(t, title, out.Title)
		}
	}
}

func TestValidateRecordRejectsCrossCategoryTitle(t *testing.T) {
	in := validInput()
	in.Type = models.TypeIntervention
	in.Title = "corruption"

	_, err := ValidateRecord(in)
	require.Error(t, err)

	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Contains(t, ve.Message, "flooding", "error should name the valid set")
}

func TestValidateRecordRejectsUnknownType(t *testing.T) {
	in := validInput()
	in.Type = "complaint"

	_, err := ValidateRecord(in)
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)
}

func TestValidateRecordRejectsShortTitle(t *testing.T) {
	in := validInput()
	in.Title = "  ab "

	_, err := ValidateRecord(in)
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestValidateRecordRejectsShortDescription(t *testing.T) {
	in := validInput()
	in.Description = "   too short   "

	_, err := ValidateRecord(in)
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "description", ve.Field)
}

func TestValidateRecordTrimsDescription(t *testing.T) {
	in := validInput()
	in.Description = "  a perfectly valid description  "

	out, err := ValidateRecord(in)
	require.NoError(t, err)
	assert.Equal(t, "a perfectly valid description", out.Description)
}

func TestValidateCoordinates(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		lat     *float64
		lon     *float64
		wantErr string
	}{
		{"both absent", nil, nil, ""},
		{"valid", f(-1.2921), f(36.8219), ""},
		{"lat boundary low", f(-90), f(0), ""},
		{"lat boundary high", f(90), f(0), ""},
		{"lon boundary low", f(0), f(-180), ""},
		{"lon boundary high", f(0), f(180), ""},
		{"lat too low", f(-90.01), f(0), "latitude"},
		{"lat too high", f(91), f(0), "latitude"},
		{"lon too low", f(0), f(-181), "longitude"},
		{"lon too high", f(0), f(180.5), "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lon)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ve *Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantErr, ve.Field)
		})
	}
}

func TestCategoriesForType(t *testing.T) {
	assert.Equal(t, RedFlagCategories, CategoriesForType(models.TypeRedFlag))
	assert.Equal(t, InterventionCategories, CategoriesForType(models.TypeIntervention))
	assert.Nil(t, CategoriesForType("unknown"))
}
