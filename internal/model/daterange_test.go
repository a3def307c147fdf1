package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			now:       time.Date(2024, time.July, 15, 10, 30, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january rolls back to previous december",
			now:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "march in a leap year ends on feb 29",
			now:       time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "march in a non-leap year ends on feb 28",
			now:       time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december 31 stays within november",
			now:       time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviousMonth(tt.now)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
			// Start and end must share the month preceding now's month.
			assert.Equal(t, got.Start.Month(), got.End.Month())
			assert.Equal(t, got.Start.Year(), got.End.Year())
		})
	}
}

func TestPreviousMonthTimeOfDayIgnored(t *testing.T) {
	morning := PreviousMonth(time.Date(2024, time.May, 3, 0, 0, 1, 0, time.UTC))
	evening := PreviousMonth(time.Date(2024, time.May, 3, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, morning, evening)
}

func TestDateRangeQueryBounds(t *testing.T) {
	r := Month(2024, time.June, time.UTC)
	assert.Equal(t, "2024/06/01", r.QueryAfter())
	// before: is exclusive in Gmail, so the bound is the day after the end.
	assert.Equal(t, "2024/07/01", r.QueryBefore())
}

func TestDateRangeContains(t *testing.T) {
	r := Month(2024, time.June, time.UTC)
	assert.True(t, r.Contains(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC)))
}
