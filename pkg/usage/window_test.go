package usage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldsuite/entitlement/pkg/usage"
)

func TestMonthWindow(t *testing.T) {
	t.Parallel()

	t.Run("mid month", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
		w := usage.MonthWindow(now)

		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), w.From)
		assert.Equal(t, now, w.To)
	})

	t.Run("first instant of month is an empty window", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		w := usage.MonthWindow(now)

		assert.Equal(t, w.From, w.To)
		assert.False(t, w.Contains(now))
	})

	t.Run("non-UTC input normalized to UTC boundaries", func(t *testing.T) {
		t.Parallel()

		// 2025-03-01 01:00 +0300 is still 2025-02-28 22:00 UTC.
		loc := time.FixedZone("EAT", 3*60*60)
		now := time.Date(2025, time.March, 1, 1, 0, 0, 0, loc)

		w := usage.MonthWindow(now)

		assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), w.From)
		assert.Equal(t, time.UTC, w.From.Location())
	})

	t.Run("half open interval", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		w := usage.MonthWindow(now)

		assert.True(t, w.Contains(w.From))
		assert.True(t, w.Contains(now.Add(-time.Second)))
		assert.False(t, w.Contains(now))
		assert.False(t, w.Contains(w.From.Add(-time.Nanosecond)))
	})

	t.Run("previous month excluded", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		w := usage.MonthWindow(now)

		lastMonth := time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)
		assert.False(t, w.Contains(lastMonth))
	})
}

func TestWindowZero(t *testing.T) {
	t.Parallel()

	var w usage.Window

	assert.True(t, w.IsZero())
	assert.True(t, w.Contains(time.Now()))
	assert.True(t, w.Contains(time.Time{}))
	assert.False(t, usage.MonthWindow(time.Now()).IsZero())
}
