package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// The same instant expressed in different zones is the same calendar day. An
// end date entered late in the evening must not be rejected against a created
// timestamp that round-tripped through the database in UTC.
func TestSameOrAfterDay_MixedZones(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	created := time.Date(2026, 3, 10, 23, 30, 0, 0, est)
	sameInstantUTC := created.UTC()

	assert.True(t, SameOrAfterDay(sameInstantUTC, created))
	assert.True(t, SameOrAfterDay(created, sameInstantUTC))
	assert.Equal(t, 0, DaysBetween(created, sameInstantUTC))
}

func TestSameOrAfterDay(t *testing.T) {
	base := time.Date(2026, 6, 15, 14, 0, 0, 0, time.Local)
	assert.True(t, SameOrAfterDay(base.Add(-13*time.Hour), base))
	assert.True(t, SameOrAfterDay(base.AddDate(0, 0, 3), base))
	assert.False(t, SameOrAfterDay(base.AddDate(0, 0, -1), base))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 6, 15, 23, 0, 0, 0, time.Local)
	b := time.Date(2026, 6, 25, 1, 0, 0, 0, time.Local)
	assert.Equal(t, 10, DaysBetween(a, b))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-06-15")
	assert.True(t, ok)
	assert.Equal(t, 15, d.Day())

	_, ok = ParseDate("15/06/2026")
	assert.False(t, ok)
}
