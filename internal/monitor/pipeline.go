package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/rs/zerolog"
)

// PageFetcher retrieves raw page content.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) FetchResult
}

// ContentExtractor derives canonical text from raw content.
type ContentExtractor interface {
	Extract(raw []byte) models.CanonicalText
}

// ContentDiffer compares two canonical texts.
type ContentDiffer interface {
	Diff(oldText, newText models.CanonicalText) models.ChangeEvent
}

// Rescheduler advances a page to its next due time.
type Rescheduler interface {
	Reschedule(pageName string, checkedAt time.Time) (time.Time, error)
}

// PipelineDeps are the collaborators of a CheckPipeline. Scheduler, Notifier
// and Sink are optional.
type PipelineDeps struct {
	Fetcher   PageFetcher
	Extractor ContentExtractor
	Baselines models.BaselineStore
	Differ    ContentDiffer
	Notifier  notifier.Notifier
	Scheduler Rescheduler
	Sink      OutcomeSink
	Subject   string
	Logger    zerolog.Logger
}

// CheckPipeline runs one check of one page.
type CheckPipeline struct {
	deps   PipelineDeps
	logger zerolog.Logger
}

// NewCheckPipeline creates a CheckPipeline.
func NewCheckPipeline(deps PipelineDeps) *CheckPipeline {
	if deps.Notifier == nil {
		deps.Notifier = notifier.NopNotifier{}
	}
	if deps.Subject == "" {
		deps.Subject = config.DefaultEmailSubject
	}
	return &CheckPipeline{
		deps:   deps,
		logger: deps.Logger.With().Str("component", "CheckPipeline").Logger(),
	}
}

// Run checks page at now, reschedules it whatever the result and emits the
// outcome. It never panics.
func (p *CheckPipeline) Run(ctx context.Context, page models.MonitoredPage, now time.Time) models.CheckOutcome {
	outcome := p.check(ctx, page, now)

	outcome.NextDue = now.Add(page.CheckInterval)
	if p.deps.Scheduler != nil {
		next, err := p.deps.Scheduler.Reschedule(page.Name, now)
		if err != nil {
			p.logger.Error().Err(err).Str("page", page.Name).Msg("Failed to reschedule page")
		} else {
			outcome.NextDue = next
		}
	}

	if p.deps.Sink != nil {
		p.deps.Sink.Emit(ctx, outcome)
	}
	return outcome
}

// check performs fetch, extract, compare, notify and baseline refresh. A
// panic in any collaborator becomes a failed outcome.
func (p *CheckPipeline) check(ctx context.Context, page models.MonitoredPage, now time.Time) (outcome models.CheckOutcome) {
	outcome = models.CheckOutcome{
		Event:     models.ChangeEvent{PageName: page.Name},
		URL:       page.URL,
		CheckedAt: now,
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("page", page.Name).Interface("panic", r).Msg("Recovered from panic during check")
			outcome.Event = models.ChangeEvent{PageName: page.Name, Kind: models.ChangeFailed}
			outcome.Reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	result := p.deps.Fetcher.Fetch(ctx, page.URL)
	if !result.Accessible {
		outcome.Event.Kind = models.ChangeInaccessible
		if result.Err != nil {
			outcome.Reason = result.Err.Error()
		}
		p.notify(ctx, &outcome)
		return outcome
	}

	newText := p.deps.Extractor.Extract(result.Content)

	exists, err := p.deps.Baselines.Has(page.Name)
	if err != nil {
		return p.failed(outcome, err, "failed to look up baseline")
	}

	if !exists {
		outcome.Event.Kind = models.ChangeCreated
		p.notify(ctx, &outcome)
		p.storeBaseline(&outcome, result.Content)
		return outcome
	}

	oldRaw, err := p.deps.Baselines.Get(page.Name)
	if err != nil {
		return p.failed(outcome, err, "failed to read baseline")
	}
	oldText := p.deps.Extractor.Extract(oldRaw)

	event := p.deps.Differ.Diff(oldText, newText)
	event.PageName = page.Name
	outcome.Event = event

	if event.Kind == models.ChangeChanged {
		p.notify(ctx, &outcome)
	}

	p.storeBaseline(&outcome, result.Content)
	return outcome
}

func (p *CheckPipeline) failed(outcome models.CheckOutcome, err error, msg string) models.CheckOutcome {
	p.logger.Error().Err(err).Str("page", outcome.Event.PageName).Msg(msg)
	outcome.Event = models.ChangeEvent{PageName: outcome.Event.PageName, Kind: models.ChangeFailed}
	outcome.Reason = fmt.Sprintf("%s: %v", msg, err)
	return outcome
}

// storeBaseline replaces the baseline. A write failure keeps the outcome kind
// and is reported through Reason.
func (p *CheckPipeline) storeBaseline(outcome *models.CheckOutcome, raw []byte) {
	if err := p.deps.Baselines.Put(outcome.Event.PageName, raw); err != nil {
		p.logger.Error().Err(err).Str("page", outcome.Event.PageName).Msg("Failed to store baseline")
		outcome.Reason = fmt.Sprintf("failed to store baseline: %v", err)
	}
}

// notify sends the outcome's message. Failures are logged and dropped.
func (p *CheckPipeline) notify(ctx context.Context, outcome *models.CheckOutcome) {
	msg, ok := notifier.FormatOutcome(*outcome, p.deps.Subject)
	if !ok {
		return
	}
	if err := p.deps.Notifier.Send(ctx, msg); err != nil {
		p.logger.Error().Err(err).Str("page", outcome.Event.PageName).Msg("Unable to send notification")
		return
	}
	outcome.Notified = true
}
