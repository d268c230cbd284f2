package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	end := time.Date(2024, 5, 31, 23, 0, 0, 0, time.Local)

	p, err := NewPeriod(start, end)
	require.NoError(t, err)

	// Normalized to UTC midnight
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, 31, p.Days())
}

func TestNewPeriod_EndBeforeStart(t *testing.T) {
	_, err := NewPeriod(
		time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Error(t, err)
}

func TestNewPeriod_SingleDay(t *testing.T) {
	d := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	p, err := NewPeriod(d, d)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Days())
	assert.True(t, p.Contains(d))
}

func TestNewPeriodFromStrings(t *testing.T) {
	p, err := NewPeriodFromStrings("2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01..2024-05-31", p.String())

	_, err = NewPeriodFromStrings("not-a-date", "2024-05-31")
	assert.Error(t, err)

	_, err = NewPeriodFromStrings("2024-05-01", "2024/05/31")
	assert.Error(t, err)
}

func TestPeriodForMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.May, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
	}

	for _, tt := range tests {
		p := PeriodForMonth(tt.year, tt.month)
		assert.Equal(t, tt.days, p.Days(), "%d-%s", tt.year, tt.month)
		assert.Equal(t, time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC), p.Start())
	}
}

func TestPeriod_Day(t *testing.T) {
	p := PeriodForMonth(2024, time.May)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), p.Day(0))
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), p.Day(30))
}

func TestPeriod_Contains(t *testing.T) {
	p := MustNewPeriod(
		time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	)

	assert.True(t, p.Contains(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, 5, 20, 18, 45, 0, 0, time.UTC))) // same day, later hour
	assert.False(t, p.Contains(time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)))
}

func TestPeriod_JSONRoundTrip(t *testing.T) {
	p := PeriodForMonth(2024, time.May)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-05-01","end":"2024-05-31"}`, string(data))

	var decoded Period
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, p.Equals(decoded))
}

func TestDateOf(t *testing.T) {
	in := time.Date(2024, 5, 15, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), DateOf(in))
}
