package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantErr  bool
	}{
		{"valid", "citizen_one", "citizen_one", false},
		{"trimmed", "  citizen_one  ", "citizen_one", false},
		{"too short", "short", "", true},
		{"embedded space", "citizen one", "", true},
		{"embedded tab", "citizen\tone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", got)

	for _, bad := range []string{"", "not-an-email", "missing@tld", "@example.com"} {
		_, err := NormalizeEmail(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password1"))

	tests := map[string]string{
		"Pass1":      "too short",
		"password1":  "no uppercase",
		"PASSWORD1":  "no lowercase",
		"Passwords":  "no digit",
	}
	for input, reason := range tests {
		assert.Error(t, ValidatePassword(input), reason)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("+254712345678"))
	assert.Error(t, ValidatePhone("0712345678"))
	assert.Error(t, ValidatePhone("+0712345678"))
	assert.Error(t, ValidatePhone("not-a-phone"))
}
