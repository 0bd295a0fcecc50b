package monitor

import (
	"testing"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPages(intervals ...time.Duration) []models.MonitoredPage {
	names := []string{"A", "B", "C", "D", "E"}
	pages := make([]models.MonitoredPage, len(intervals))
	for i, interval := range intervals {
		pages[i] = models.MonitoredPage{Name: names[i], URL: "https://" + names[i] + ".example", CheckInterval: interval}
	}
	return pages
}

func TestNewScheduler_Validation(t *testing.T) {
	_, err := NewScheduler(nil)
	assert.Error(t, err)

	_, err = NewScheduler(testPages(0))
	assert.Error(t, err)

	dup := testPages(time.Hour, time.Hour)
	dup[1].Name = dup[0].Name
	_, err = NewScheduler(dup)
	assert.Error(t, err)
}

func TestScheduler_FirstRoundInConfigurationOrder(t *testing.T) {
	s, err := NewScheduler(testPages(3*time.Hour, time.Hour, 2*time.Hour))
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var order []string
	for i := 0; i < 3; i++ {
		assert.Equal(t, time.Duration(0), s.WaitTime(now), "unchecked pages are due immediately")
		page := s.NextDue()
		order = append(order, page.Name)
		_, err := s.Reschedule(page.Name, now)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestScheduler_NextDueIsMinimum(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pages := testPages(time.Hour, 3*time.Hour, 2*time.Hour)
	for i := range pages {
		pages[i].LastChecked = start
	}
	s, err := NewScheduler(pages)
	require.NoError(t, err)

	// Due times: A t+1h, B t+3h, C t+2h.
	assert.Equal(t, "A", s.NextDue().Name)
	assert.Equal(t, time.Hour, s.WaitTime(start))

	next, err := s.Reschedule("A", start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, start.Add(2*time.Hour), next)

	// A and C now share t+2h; configuration order breaks the tie.
	assert.Equal(t, "A", s.NextDue().Name)
	assert.Equal(t, "A", s.NextDue().Name, "stable across calls")

	_, err = s.Reschedule("A", start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "C", s.NextDue().Name)
}

func TestScheduler_RescheduleInvariant(t *testing.T) {
	s, err := NewScheduler(testPages(time.Hour, 6*time.Hour))
	require.NoError(t, err)

	checkedAt := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	for _, name := range []string{"A", "B"} {
		next, err := s.Reschedule(name, checkedAt)
		require.NoError(t, err)

		page, ok := s.Page(name)
		require.True(t, ok)
		assert.Equal(t, checkedAt.Add(page.CheckInterval), page.DueTime())
		assert.Equal(t, page.DueTime(), next)
	}

	_, err = s.Reschedule("missing", checkedAt)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestScheduler_WaitTimeNeverNegative(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewScheduler(testPages(time.Hour))
	require.NoError(t, err)
	_, err = s.Reschedule("A", start)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, s.WaitTime(start.Add(30*time.Minute)))
	assert.Equal(t, time.Duration(0), s.WaitTime(start.Add(5*time.Hour)))
}

func TestScheduler_PagesKeepsOrder(t *testing.T) {
	s, err := NewScheduler(testPages(2*time.Hour, time.Hour))
	require.NoError(t, err)
	_, err = s.Reschedule("A", time.Now())
	require.NoError(t, err)

	pages := s.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "A", pages[0].Name)
	assert.True(t, pages[0].IsChecked())
	assert.False(t, pages[1].IsChecked())
}
