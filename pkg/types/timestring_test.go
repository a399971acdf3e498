package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("13:45")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:45")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// выход за пределы суток
	_, err = TimeString("23:50").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeStringOnDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	got, err := TimeString("14:30").OnDate(date, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, loc), got)
}

func TestNewTimeStringDropsSeconds(t *testing.T) {
	ts := NewTimeString(time.Date(2024, 6, 10, 9, 7, 42, 0, time.UTC))
	assert.Equal(t, TimeString("09:07"), ts)
}
