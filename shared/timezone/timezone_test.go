package timezone_test

import (
	"testing"
	"time"

	"tourdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2024-07-15")
	require.NoError(t, err)

	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.July, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestDay(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	late := time.Date(2024, 12, 24, 23, 30, 0, 0, nairobi)

	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), timezone.Day(late))
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "three nights",
			checkIn:  time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "same day",
			checkIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "reversed range",
			checkIn:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "across month end",
			checkIn:  time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.NightsBetween(tt.checkIn, tt.checkOut))
		})
	}
}
