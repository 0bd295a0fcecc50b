package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/extractor"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves queued bodies per URL; an empty queue means inaccessible.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]string
	calls  int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{bodies: make(map[string][]string)}
}

func (f *fakeFetcher) queue(url string, bodies ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = append(f.bodies[url], bodies...)
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) FetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	queued := f.bodies[url]
	if len(queued) == 0 {
		return FetchResult{Err: errors.New("connection refused")}
	}
	f.bodies[url] = queued[1:]
	return FetchResult{Accessible: true, Content: []byte(queued[0]), StatusCode: 200}
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	messages []notifier.Message
	err      error
}

func (r *recordingNotifier) Send(_ context.Context, msg notifier.Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

type recordingSink struct {
	outcomes []models.CheckOutcome
}

func (r *recordingSink) Emit(_ context.Context, outcome models.CheckOutcome) {
	r.outcomes = append(r.outcomes, outcome)
}

// countingDiffer wraps a Differ and counts calls.
type countingDiffer struct {
	inner *differ.Differ
	calls int
}

func (c *countingDiffer) Diff(oldText, newText models.CanonicalText) models.ChangeEvent {
	c.calls++
	return c.inner.Diff(oldText, newText)
}

type testHarness struct {
	fetcher   *fakeFetcher
	notifier  *recordingNotifier
	sink      *recordingSink
	differ    *countingDiffer
	baselines *datastore.FileBaselineStore
	scheduler *Scheduler
	pipeline  *CheckPipeline
}

func newTestHarness(t *testing.T, pages ...models.MonitoredPage) *testHarness {
	t.Helper()
	logger := zerolog.Nop()

	store, err := datastore.NewFileBaselineStore(filepath.Join(t.TempDir(), "pages"), logger)
	require.NoError(t, err)
	scheduler, err := NewScheduler(pages)
	require.NoError(t, err)

	h := &testHarness{
		fetcher:   newFakeFetcher(),
		notifier:  &recordingNotifier{},
		sink:      &recordingSink{},
		differ:    &countingDiffer{inner: differ.New()},
		baselines: store,
		scheduler: scheduler,
	}
	h.pipeline = NewCheckPipeline(PipelineDeps{
		Fetcher:   h.fetcher,
		Extractor: extractor.New(logger),
		Baselines: store,
		Differ:    h.differ,
		Notifier:  h.notifier,
		Scheduler: scheduler,
		Sink:      h.sink,
		Logger:    logger,
	})
	return h
}

func examplePage() models.MonitoredPage {
	return models.MonitoredPage{Name: "Example", URL: "https://example.com/", CheckInterval: time.Hour}
}

func (h *testHarness) baseline(t *testing.T, name string) string {
	t.Helper()
	data, err := h.baselines.Get(name)
	require.NoError(t, err)
	return string(data)
}
