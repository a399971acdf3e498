package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	// 2024-06-10 - понедельник
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	expected := []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	seen := map[string]bool{}

	for i, want := range expected {
		got := DayKey(monday.AddDate(0, 0, i))
		assert.Equal(t, want, got)
		seen[got] = true
	}

	// все 7 ключей покрыты за одну неделю
	assert.Len(t, seen, 7)
}

func TestCeilToSlot(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name     string
		in       time.Time
		duration int
		want     time.Time
	}{
		{
			name:     "rounds up to next boundary",
			in:       time.Date(2024, 6, 10, 9, 7, 0, 0, loc),
			duration: 15,
			want:     time.Date(2024, 6, 10, 9, 15, 0, 0, loc),
		},
		{
			name:     "aligned input unchanged",
			in:       time.Date(2024, 6, 10, 9, 0, 0, 0, loc),
			duration: 15,
			want:     time.Date(2024, 6, 10, 9, 0, 0, 0, loc),
		},
		{
			name:     "aligned input drops seconds",
			in:       time.Date(2024, 6, 10, 9, 30, 42, 999, loc),
			duration: 30,
			want:     time.Date(2024, 6, 10, 9, 30, 0, 0, loc),
		},
		{
			name:     "rolls over the hour",
			in:       time.Date(2024, 6, 10, 9, 55, 0, 0, loc),
			duration: 20,
			want:     time.Date(2024, 6, 10, 10, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CeilToSlot(tt.in, tt.duration)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestCeilToSlotIdempotent(t *testing.T) {
	in := time.Date(2024, 6, 10, 11, 37, 13, 0, time.UTC)
	once := CeilToSlot(in, 15)
	twice := CeilToSlot(once, 15)
	assert.True(t, once.Equal(twice))
}
