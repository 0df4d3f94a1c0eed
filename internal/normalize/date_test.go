package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"full date", "2025-08-05", "2025-08-05"},
		{"bare year", "2025", "2025-01-01"},
		{"year and month", "2025-04", "2025-04-01"},
		{"unpadded month", "2019-6-01", "2019-06-01"},
		{"unpadded day", "2019-06-1", "2019-06-01"},
		{"date with time of day", "2025-08-05 09:35:06", "2025-08-05"},
		{"year period", "2025/2026", "2025-01-01"},
		{"date period", "2021-11-08/2021-11-23", "2021-11-08"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDateString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDateString_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"not a date", "sometime in spring"},
		{"month out of range", "2025-13-01"},
		{"day out of range", "2025-02-30"},
		{"non-numeric year", "spring-06-01"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeDateString(tc.input)
			assert.Error(t, err)
		})
	}
}
