package monitor

import (
	"context"

	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/rs/zerolog"
)

// OutcomeSink receives one structured outcome per completed check.
type OutcomeSink interface {
	Emit(ctx context.Context, outcome models.CheckOutcome)
}

// LogSink renders outcomes as one log line each.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "CheckOutcome").Logger()}
}

// Emit implements OutcomeSink.
func (s *LogSink) Emit(_ context.Context, outcome models.CheckOutcome) {
	var event *zerolog.Event
	switch outcome.Kind() {
	case models.ChangeInaccessible:
		event = s.logger.Warn()
	case models.ChangeFailed:
		event = s.logger.Error()
	default:
		event = s.logger.Info()
	}

	added, deleted := models.CountOperations(outcome.Event.Diff)
	event = event.
		Str("page", outcome.Event.PageName).
		Str("url", outcome.URL).
		Str("kind", string(outcome.Kind())).
		Time("checked_at", outcome.CheckedAt).
		Time("next_due", outcome.NextDue).
		Bool("notified", outcome.Notified)
	if outcome.Kind() == models.ChangeChanged {
		event = event.Int("lines_added", added).Int("lines_deleted", deleted)
	}
	if outcome.Reason != "" {
		event = event.Str("error", outcome.Reason)
	}
	event.Msg("Page checked")
}

// HistoryRecorder persists outcomes.
type HistoryRecorder interface {
	Record(ctx context.Context, outcome models.CheckOutcome) (int64, error)
}

// HistorySink appends outcomes to a history store. Failures are logged.
type HistorySink struct {
	store  HistoryRecorder
	logger zerolog.Logger
}

// NewHistorySink creates a HistorySink.
func NewHistorySink(store HistoryRecorder, logger zerolog.Logger) *HistorySink {
	return &HistorySink{
		store:  store,
		logger: logger.With().Str("component", "HistorySink").Logger(),
	}
}

// Emit implements OutcomeSink.
func (s *HistorySink) Emit(ctx context.Context, outcome models.CheckOutcome) {
	if _, err := s.store.Record(ctx, outcome); err != nil {
		s.logger.Error().Err(err).Str("page", outcome.Event.PageName).Msg("Failed to record check history")
	}
}

// MultiSink forwards outcomes to several sinks in order.
type MultiSink []OutcomeSink

// Emit implements OutcomeSink.
func (m MultiSink) Emit(ctx context.Context, outcome models.CheckOutcome) {
	for _, sink := range m {
		if sink != nil {
			sink.Emit(ctx, outcome)
		}
	}
}
