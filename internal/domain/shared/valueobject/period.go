package valueobject

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used across the system
const DateLayout = "2006-01-02"

// DateOf truncates a time to its calendar date in UTC.
// All billing comparisons happen at day granularity; events dated on a
// cutoff day are included up to end-of-day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Period is a value object representing an inclusive calendar date range.
// It is immutable - all operations return new Period instances.
// Both ends are normalized to UTC midnight; the range covers full days.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod creates a Period from two dates (inclusive on both ends).
// Returns error if end falls before start.
func NewPeriod(start, end time.Time) (Period, error) {
	s := DateOf(start)
	e := DateOf(end)
	if e.Before(s) {
		return Period{}, fmt.Errorf("period end %s cannot be before start %s",
			e.Format(DateLayout), s.Format(DateLayout))
	}
	return Period{start: s, end: e}, nil
}

// NewPeriodFromStrings creates a Period from two YYYY-MM-DD strings
func NewPeriodFromStrings(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewPeriod(s, e)
}

// PeriodForMonth creates a Period covering one calendar month
func PeriodForMonth(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{start: start, end: end}
}

// MustNewPeriod creates a Period, panics on error.
// Use only when you're certain the inputs are valid.
func MustNewPeriod(start, end time.Time) Period {
	p, err := NewPeriod(start, end)
	if err != nil {
		panic(err)
	}
	return p
}

// Start returns the first day of the period
func (p Period) Start() time.Time {
	return p.start
}

// End returns the last day of the period (inclusive)
func (p Period) End() time.Time {
	return p.end
}

// Days returns the number of calendar days the period covers
func (p Period) Days() int {
	return int(p.end.Sub(p.start).Hours()/24) + 1
}

// Day returns the i-th day of the period (0-based)
func (p Period) Day(i int) time.Time {
	return p.start.AddDate(0, 0, i)
}

// Contains reports whether the given time's calendar date falls within the period
func (p Period) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(p.start) && !d.After(p.end)
}

// IsZero reports whether the period is the zero value
func (p Period) IsZero() bool {
	return p.start.IsZero() && p.end.IsZero()
}

// Equals compares two periods
func (p Period) Equals(other Period) bool {
	return p.start.Equal(other.start) && p.end.Equal(other.end)
}

// String returns "start..end" in date format
func (p Period) String() string {
	return p.start.Format(DateLayout) + ".." + p.end.Format(DateLayout)
}

type periodJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarshalJSON implements json.Marshaler
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(periodJSON{
		Start: p.start.Format(DateLayout),
		End:   p.end.Format(DateLayout),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Period) UnmarshalJSON(data []byte) error {
	var raw periodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPeriodFromStrings(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
