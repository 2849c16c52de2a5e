package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	got, err := ParseDate("2024-10-01", riyadh)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 30, 21, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-10-01T08:00:00+03:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 1, 5, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("01/10/2024", nil)
	assert.Error(t, err)

	p, err := ParseDatePtr(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p)
	empty := "  "
	p, err = ParseDatePtr(&empty, nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDayAndMonthBounds(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	// 22:30 UTC = 01:30 hari berikutnya di Riyadh
	now := time.Date(2024, 10, 31, 22, 30, 0, 0, time.UTC)

	start, end := DayBounds(now, riyadh)
	assert.Equal(t, time.Date(2024, 10, 31, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 11, 1, 21, 0, 0, 0, time.UTC), end)

	start, end = MonthBounds(now, riyadh)
	assert.Equal(t, time.Date(2024, 10, 31, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 11, 30, 21, 0, 0, 0, time.UTC), end)

	start, end = DayBounds(now, time.UTC)
	assert.Equal(t, time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestUTCKeepsZero(t *testing.T) {
	assert.True(t, UTC(time.Time{}).IsZero())
	assert.Nil(t, UTCPtr(nil))
}
