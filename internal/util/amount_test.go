package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountCent(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.01", 1},
		{"1", 100},
		{"12.34", 1234},
		{"100.5", 10050},
		{"9999999.99", 999999999},
	}
	for _, tt := range tests {
		got, err := ParseAmountCent(tt.in)
		require.NoError(t, err, "ParseAmountCent(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseAmountCent(%q)", tt.in)
	}
}

func TestParseAmountCentRejects(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"0",
		"-1",
		"-0.01",
		"1.234",    // three decimal places
		"10000000", // at the cap
		"99999999",
	}
	for _, in := range tests {
		_, err := ParseAmountCent(in)
		assert.Error(t, err, "ParseAmountCent(%q)", in)
	}
}

func TestFormatCent(t *testing.T) {
	assert.Equal(t, "0.00", FormatCent(0))
	assert.Equal(t, "12.34", FormatCent(1234))
	assert.Equal(t, "-0.50", FormatCent(-50))
	assert.Equal(t, "100.00", FormatCent(10000))
}

func TestParseDate(t *testing.T) {
	valid := []string{
		"2025-12-03",
		"2025-12-03T10:30:00",
		"2025-12-03T00:00:00+08:00",
	}
	for _, in := range valid {
		_, err := ParseDate(in)
		assert.NoError(t, err, "ParseDate(%q)", in)
	}

	invalid := []string{
		"",
		"2025/12/03",
		"03-12-2025",
		"not-a-date",
	}
	for _, in := range invalid {
		_, err := ParseDate(in)
		assert.Error(t, err, "ParseDate(%q)", in)
	}
}
