package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 9, 30, 0, 0, time.UTC)

	feb := AddMonths(jan31, 1)
	assert.Equal(t, time.Date(2025, time.February, 28, 9, 30, 0, 0, time.UTC), feb)

	// Leap year keeps the 29th
	feb24 := AddMonths(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, 29, feb24.Day())

	mar := AddMonths(jan31, 2)
	assert.Equal(t, time.Date(2025, time.March, 31, 9, 30, 0, 0, time.UTC), mar)
}

func TestAddMonths_PreservesClock(t *testing.T) {
	in := time.Date(2025, time.June, 15, 23, 59, 58, 123, time.UTC)
	out := AddMonths(in, 7)
	assert.Equal(t, time.Date(2026, time.January, 15, 23, 59, 58, 123, time.UTC), out)
}

func TestAddMonths_NegativeAndYearRollover(t *testing.T) {
	in := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC), AddMonths(in, -2))
	assert.Equal(t, time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC), AddMonths(in, 13))
	assert.Equal(t, time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC), AddMonths(in, -13))
}

func TestAddMonths_RoundTripWithinOneDay(t *testing.T) {
	// Exact round-trips are not guaranteed at month-end because clamping is
	// lossy; the result must stay within one day of the input.
	cases := []time.Time{
		time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 15, 18, 45, 0, 0, time.UTC),
	}
	for _, in := range cases {
		for _, m := range []int{1, 3, 6, 12} {
			back := AddMonths(AddMonths(in, m), -m)
			diff := back.Sub(in)
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, 24*time.Hour, "round-trip of %v by %d months drifted to %v", in, m, back)
		}
	}
}

func TestCadenceMonths(t *testing.T) {
	assert.Equal(t, 1, CadenceMonthly.Months())
	assert.Equal(t, 3, CadenceQuarterly.Months())
	assert.Equal(t, 6, CadenceSemiAnnual.Months())
	assert.Equal(t, 12, CadenceAnnual.Months())
	// Unknown cadence deliberately falls back to monthly
	assert.Equal(t, 1, Cadence("weekly").Months())
	assert.Equal(t, 1, Cadence("").Months())
}

func TestNextOccurrence(t *testing.T) {
	anchor := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC), NextOccurrence(anchor, CadenceMonthly))
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), NextOccurrence(anchor, CadenceQuarterly))
	assert.Equal(t, time.Date(2026, time.May, 30, 0, 0, 0, 0, time.UTC), NextOccurrence(anchor, CadenceSemiAnnual))
	assert.Equal(t, time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC), NextOccurrence(anchor, CadenceAnnual))
}

func TestMonthlyEquivalent(t *testing.T) {
	assert.InDelta(t, 500.0, MonthlyEquivalent(500, CadenceMonthly), 1e-9)
	assert.InDelta(t, 100.0, MonthlyEquivalent(300, CadenceQuarterly), 1e-9)
	assert.InDelta(t, 50.0, MonthlyEquivalent(300, CadenceSemiAnnual), 1e-9)
	assert.InDelta(t, 100.0, MonthlyEquivalent(1200, CadenceAnnual), 1e-9)
	// Unknown cadence means no normalization
	assert.InDelta(t, 750.0, MonthlyEquivalent(750, Cadence("fortnightly")), 1e-9)
}

func TestMonthlyEquivalent_Linear(t *testing.T) {
	for _, c := range []Cadence{CadenceMonthly, CadenceQuarterly, CadenceSemiAnnual, CadenceAnnual} {
		assert.InDelta(t, 2*MonthlyEquivalent(123.45, c), MonthlyEquivalent(246.90, c), 1e-9)
	}
}
