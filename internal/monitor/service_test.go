package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when the service sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

// sleeper advances the clock and cancels after maxSleeps sleeps.
func (c *fakeClock) sleeper(cancel context.CancelFunc, maxSleeps int) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		if len(c.sleeps) >= maxSleeps {
			cancel()
			return ctx.Err()
		}
		c.sleeps = append(c.sleeps, d)
		c.now = c.now.Add(d)
		return nil
	}
}

func TestService_EndToEnd(t *testing.T) {
	page := examplePage()
	h := newTestHarness(t, page)
	h.fetcher.queue(page.URL,
		"<html><body>Hello</body></html>",
		"<html><body>Hello World</body></html>",
	)

	clock := &fakeClock{now: checkTime}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewService(h.scheduler, h.pipeline, zerolog.Nop(),
		WithClock(clock.Now),
		WithSleeper(clock.sleeper(cancel, 1)),
	)
	require.NoError(t, svc.Run(ctx))

	require.Len(t, h.sink.outcomes, 2)

	first := h.sink.outcomes[0]
	assert.Equal(t, models.ChangeCreated, first.Kind())
	assert.Equal(t, checkTime, first.CheckedAt)
	assert.Equal(t, checkTime.Add(time.Hour), first.NextDue)

	assert.Equal(t, []time.Duration{time.Hour}, clock.sleeps)

	second := h.sink.outcomes[1]
	require.Equal(t, models.ChangeChanged, second.Kind())
	assert.Equal(t, checkTime.Add(time.Hour), second.CheckedAt)
	assert.Equal(t, []models.DiffLine{
		{Operation: models.DiffDelete, Text: "Hello"},
		{Operation: models.DiffInsert, Text: "Hello World"},
	}, second.Event.Diff)

	require.Len(t, h.notifier.messages, 2)
	assert.Contains(t, h.notifier.messages[0].Body, "Created initial page")
	assert.Equal(t, "<html><body>Hello World</body></html>", h.baseline(t, "Example"))
}

func TestService_InterleavesPages(t *testing.T) {
	fast := models.MonitoredPage{Name: "Fast", URL: "https://fast.example", CheckInterval: time.Hour}
	slow := models.MonitoredPage{Name: "Slow", URL: "https://slow.example", CheckInterval: 3 * time.Hour}
	h := newTestHarness(t, slow, fast)

	clock := &fakeClock{now: checkTime}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewService(h.scheduler, h.pipeline, zerolog.Nop(),
		WithClock(clock.Now),
		WithSleeper(clock.sleeper(cancel, 4)),
	)
	require.NoError(t, svc.Run(ctx))

	var order []string
	for _, o := range h.sink.outcomes {
		order = append(order, o.Event.PageName)
		assert.Equal(t, models.ChangeInaccessible, o.Kind(), "nothing queued, every fetch fails")
	}
	// First round in configuration order, then by due time: t+1h Fast,
	// t+2h Fast, t+3h Slow and Fast tie (Slow first by order), t+4h Fast.
	assert.Equal(t, []string{"Slow", "Fast", "Fast", "Fast", "Slow", "Fast", "Fast"}, order)
}

func TestService_StopsWhileSleeping(t *testing.T) {
	page := examplePage()
	h := newTestHarness(t, page)

	ctx, cancel := context.WithCancel(context.Background())
	svc := NewService(h.scheduler, h.pipeline, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// The first check runs immediately, after which the loop sleeps an hour.
	require.Eventually(t, func() bool { return h.fetcher.callCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestService_RunOnce(t *testing.T) {
	a := models.MonitoredPage{Name: "A", URL: "https://a.example", CheckInterval: time.Hour}
	b := models.MonitoredPage{Name: "B", URL: "https://b.example", CheckInterval: time.Hour}
	h := newTestHarness(t, a, b)
	h.fetcher.queue(a.URL, "<p>a</p>")
	h.fetcher.queue(b.URL, "<p>b</p>")

	clock := &fakeClock{now: checkTime}
	svc := NewService(h.scheduler, h.pipeline, zerolog.Nop(), WithClock(clock.Now))

	outcomes, err := svc.RunOnce(context.Background(), "B")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "B", outcomes[0].Event.PageName)
	assert.Equal(t, models.ChangeCreated, outcomes[0].Kind())

	outcomes, err = svc.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, models.ChangeCreated, outcomes[0].Kind())
	assert.Equal(t, models.ChangeInaccessible, outcomes[1].Kind(), "queue for B is drained")

	_, err = svc.RunOnce(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
