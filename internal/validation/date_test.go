package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2023-04")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2023", "2023-13", "2023-04-01", "04-2023", "abcd-ef"} {
		_, err := ParseMonth(bad)
		require.Error(t, err, "value %q", bad)
	}
}

func TestValidateDateRange(t *testing.T) {
	start, end, err := ValidateDateRange("2020-01", "2022-06", false)
	require.NoError(t, err)
	require.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	require.NotNil(t, end)
	require.Equal(t, time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC), *end)
}

func TestValidateDateRangeCurrentDropsEnd(t *testing.T) {
	_, end, err := ValidateDateRange("2020-01", "2022-06", true)
	require.NoError(t, err)
	require.Nil(t, end)
}

func TestValidateDateRangeRequiresEnd(t *testing.T) {
	_, _, err := ValidateDateRange("2020-01", "", false)
	require.Error(t, err)
}

func TestValidateDateRangeRejectsInvertedRange(t *testing.T) {
	_, _, err := ValidateDateRange("2022-06", "2020-01", false)
	require.Error(t, err)
}

func TestValidateDateRangeAllowsSameMonth(t *testing.T) {
	_, end, err := ValidateDateRange("2022-06", "2022-06", false)
	require.NoError(t, err)
	require.NotNil(t, end)
}
