package utils

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"ana.torres@example.com", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"two@@example.com", false},
		{"spa ce@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
	assert.True(t, ValidatePassword("contraseña"))
	assert.False(t, ValidatePassword("ñññññ"), "length counts characters, not bytes")
}

func TestValidateRequired(t *testing.T) {
	assert.False(t, ValidateRequired(""))
	assert.False(t, ValidateRequired("   \t\n"))
	assert.True(t, ValidateRequired(" x "))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://github.com/ana/portfolio", true},
		{"http://localhost:8080", true},
		{"mailto:ana@example.com", true},
		{"github.com/ana", false},
		{"/relative/path", false},
		{"", false},
		{"http://[::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateURL(tt.raw))
		})
	}
}

func TestValidateTechStack(t *testing.T) {
	assert.False(t, ValidateTechStack(nil))
	assert.False(t, ValidateTechStack([]string{"Go", " "}))
	assert.True(t, ValidateTechStack([]string{"Go", "Astro"}))

	assert.False(t, ValidateTechList("  "))
	assert.False(t, ValidateTechList(" , "))
	assert.False(t, ValidateTechList(",,,"))
	assert.True(t, ValidateTechList("Go,"))
	assert.True(t, ValidateTechList("Go, Astro"))
}

func TestSplitTechList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Astro"}, SplitTechList("Go, Astro ,,"))
	assert.Nil(t, SplitTechList(" , "))
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	assert.NotEqual(t, a, b)
	_, err := ulid.Parse(a)
	require.NoError(t, err)
}
