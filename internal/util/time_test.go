package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMarketClose(t *testing.T) {
	ist := MarketLocation()

	testCases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Weekday before 3:30 PM",
			input:    time.Date(2024, 7, 23, 10, 0, 0, 0, ist),  // Tuesday 10:00 AM
			expected: time.Date(2024, 7, 23, 15, 30, 0, 0, ist), // Tuesday 3:30 PM
		},
		{
			name:     "Weekday after 3:30 PM",
			input:    time.Date(2024, 7, 23, 17, 0, 0, 0, ist),  // Tuesday 5:00 PM
			expected: time.Date(2024, 7, 24, 15, 30, 0, 0, ist), // Wednesday 3:30 PM
		},
		{
			name:     "Friday after 3:30 PM",
			input:    time.Date(2024, 7, 26, 18, 0, 0, 0, ist),  // Friday 6:00 PM
			expected: time.Date(2024, 7, 29, 15, 30, 0, 0, ist), // Monday 3:30 PM
		},
		{
			name:     "Saturday",
			input:    time.Date(2024, 7, 27, 12, 0, 0, 0, ist),  // Saturday 12:00 PM
			expected: time.Date(2024, 7, 29, 15, 30, 0, 0, ist), // Monday 3:30 PM
		},
		{
			name:     "Sunday",
			input:    time.Date(2024, 7, 28, 12, 0, 0, 0, ist),  // Sunday 12:00 PM
			expected: time.Date(2024, 7, 29, 15, 30, 0, 0, ist), // Monday 3:30 PM
		},
		{
			name:     "Weekday at exactly 3:30 PM",
			input:    time.Date(2024, 7, 23, 15, 30, 0, 0, ist), // Tuesday 3:30 PM
			expected: time.Date(2024, 7, 24, 15, 30, 0, 0, ist), // Wednesday 3:30 PM
		},
		{
			name:     "UTC input late on Monday is already Tuesday in India",
			input:    time.Date(2024, 7, 22, 20, 0, 0, 0, time.UTC), // Tuesday 1:30 AM IST
			expected: time.Date(2024, 7, 23, 15, 30, 0, 0, ist),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := NextMarketClose(tc.input)
			assert.Equal(t, tc.expected.UTC(), actual, "The expected close should be %v but was %v", tc.expected.UTC(), actual)
		})
	}
}

func TestMarketLocation_Offset(t *testing.T) {
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, MarketLocation()).Zone()
	assert.Equal(t, 5*60*60+30*60, offset)
}
