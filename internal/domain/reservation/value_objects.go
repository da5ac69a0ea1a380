package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPeriod  = errors.New("start date must be before end date")
	ErrUnparsableDate = errors.New("dates must be in YYYY-MM-DD format")
)

const dateLayout = "2006-01-02"

// DatePeriod is a closed calendar-date interval [start, end]. Both bounds are
// rental days: a reservation ending on a day and another starting that same day
// contend for the vehicle, so shared endpoints count as overlap.
type DatePeriod struct {
	start time.Time
	end   time.Time
}

func NewDatePeriod(start, end time.Time) (DatePeriod, error) {
	if start.IsZero() || end.IsZero() {
		return DatePeriod{}, ErrInvalidPeriod
	}

	start = truncateToDate(start)
	end = truncateToDate(end)

	if !start.Before(end) {
		return DatePeriod{}, ErrInvalidPeriod
	}

	return DatePeriod{start: start, end: end}, nil
}

// ParseDatePeriod builds a period from ISO calendar-date strings. Normalizing
// to date-only values here keeps time-of-day drift out of the overlap check.
func ParseDatePeriod(startStr, endStr string) (DatePeriod, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return DatePeriod{}, ErrUnparsableDate
	}

	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return DatePeriod{}, ErrUnparsableDate
	}

	return NewDatePeriod(start, end)
}

func (p DatePeriod) Start() time.Time {
	return p.start
}

func (p DatePeriod) End() time.Time {
	return p.end
}

// Overlaps reports whether two closed intervals share at least one day:
// a1 <= b2 && b1 <= a2. This predicate must match the daterange('[]') &&
// comparison the store runs, or the index and the committer would disagree.
func (p DatePeriod) Overlaps(other DatePeriod) bool {
	return !p.start.After(other.end) && !other.start.After(p.end)
}

func (p DatePeriod) Days() int {
	return int(p.end.Sub(p.start).Hours()/24) + 1
}

func (p DatePeriod) String() string {
	return fmt.Sprintf("[%s,%s]", p.start.Format(dateLayout), p.end.Format(dateLayout))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
