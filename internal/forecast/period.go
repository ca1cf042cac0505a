package forecast

import "time"

// Cadence is the recurrence frequency of a budget entry
type Cadence string

const (
	CadenceMonthly    Cadence = "monthly"
	CadenceQuarterly  Cadence = "quarterly"
	CadenceSemiAnnual Cadence = "semi_annual"
	CadenceAnnual     Cadence = "annual"
)

// Months returns the calendar-month stride of the cadence. Unrecognized
// values fall back to monthly on purpose: a malformed row keeps recurring
// instead of silently dropping out of the forecast.
func (c Cadence) Months() int {
	switch c {
	case CadenceMonthly:
		return 1
	case CadenceQuarterly:
		return 3
	case CadenceSemiAnnual:
		return 6
	case CadenceAnnual:
		return 12
	default:
		return 1
	}
}

// AddMonths returns t shifted by n calendar months. The day of month is
// clamped to the last valid day of the target month (Jan 31 + 1 month is
// Feb 28/29); clock components are preserved.
func AddMonths(t time.Time, n int) time.Time {
	monthIndex := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(monthIndex, 12)
	month := time.Month(floorMod(monthIndex, 12) + 1)
	day := t.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextOccurrence advances an occurrence timestamp by one cadence step
func NextOccurrence(t time.Time, c Cadence) time.Time {
	return AddMonths(t, c.Months())
}

// MonthlyEquivalent normalizes a per-cadence amount to its monthly figure
func MonthlyEquivalent(amount float64, c Cadence) float64 {
	return amount / float64(c.Months())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
