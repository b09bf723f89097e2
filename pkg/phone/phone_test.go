package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_GreekFormats(t *testing.T) {
	n := NewNormalizer("30", 10)

	cases := []struct {
		name string
		raw  string
	}{
		{"bare national", "6974628335"},
		{"plus prefix", "+306974628335"},
		{"plus with spaces", "+30 697 462 8335"},
		{"double zero prefix", "00306974628335"},
		{"trunk zero", "06974628335"},
		{"dashes", "697-462-8335"},
		{"country code no plus", "306974628335"},
		{"parentheses", "(697) 462 8335"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := n.Normalize(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, "+306974628335", got)
		})
	}
}

func TestNormalize_NationalNumberStartingWithCountryCodeDigits(t *testing.T) {
	n := NewNormalizer("30", 10)

	// Starts with "30" yet is already a full national number, so the
	// country code must not be stripped from it.
	got, err := n.Normalize("3012345678")
	require.NoError(t, err)
	assert.Equal(t, "+303012345678", got)
}

func TestNormalize_Invalid(t *testing.T) {
	n := NewNormalizer("30", 10)

	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"letters only", "call me"},
		{"too short", "69746"},
		{"too long", "69746283351234"},
		{"short after prefix strip", "+30697462"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(tc.raw)
			assert.ErrorIs(t, err, ErrInvalidNumber)
		})
	}
}

func TestNormalize_OtherCountry(t *testing.T) {
	n := NewNormalizer("49", 11)

	got, err := n.Normalize("+49 151 2345 6789")
	require.NoError(t, err)
	assert.Equal(t, "+4915123456789", got)
}
