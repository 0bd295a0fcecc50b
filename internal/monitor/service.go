package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/rs/zerolog"
)

// Clock returns the current time.
type Clock func() time.Time

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock replaces time.Now.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithSleeper replaces SleepContext.
func WithSleeper(sleep Sleeper) ServiceOption {
	return func(s *Service) { s.sleep = sleep }
}

// Service is the single control loop: wait for the next due page, check it,
// repeat. At most one check runs at a time.
type Service struct {
	scheduler *Scheduler
	pipeline  *CheckPipeline
	clock     Clock
	sleep     Sleeper
	logger    zerolog.Logger
}

// NewService creates a Service. The pipeline should reschedule through scheduler.
func NewService(scheduler *Scheduler, pipeline *CheckPipeline, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		scheduler: scheduler,
		pipeline:  pipeline,
		clock:     time.Now,
		sleep:     SleepContext,
		logger:    logger.With().Str("component", "MonitoringService").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops until ctx is cancelled. A check already started when ctx is
// cancelled runs to completion; Run then returns nil.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().Int("pages", len(s.scheduler.Pages())).Msg("Starting monitoring loop")

	for {
		if ctx.Err() != nil {
			s.logger.Info().Msg("Monitoring loop stopped")
			return nil
		}

		page := s.scheduler.NextDue()
		wait := s.scheduler.WaitTime(s.clock())
		if wait > 0 {
			seconds := int64(math.Round(wait.Seconds()))
			s.logger.Info().
				Int64("seconds", seconds).
				Str("page", page.Name).
				Msgf("Sleeping %d seconds before checking %s", seconds, page.Name)
			if err := s.sleep(ctx, wait); err != nil {
				s.logger.Info().Msg("Monitoring loop stopped")
				return nil
			}
		}

		s.pipeline.Run(context.WithoutCancel(ctx), page, s.clock())
	}
}

// RunOnce checks the named pages (all pages when names is empty) once each,
// in configuration order, and returns their outcomes.
func (s *Service) RunOnce(ctx context.Context, names ...string) ([]models.CheckOutcome, error) {
	pages, err := s.selectPages(names)
	if err != nil {
		return nil, err
	}

	outcomes := make([]models.CheckOutcome, 0, len(pages))
	for _, page := range pages {
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
		outcomes = append(outcomes, s.pipeline.Run(ctx, page, s.clock()))
	}
	return outcomes, nil
}

func (s *Service) selectPages(names []string) ([]models.MonitoredPage, error) {
	if len(names) == 0 {
		return s.scheduler.Pages(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := s.scheduler.Page(name); !ok {
			return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("unknown page '%s'", name))
		}
		wanted[name] = true
	}

	var pages []models.MonitoredPage
	for _, page := range s.scheduler.Pages() {
		if wanted[page.Name] {
			pages = append(pages, page)
		}
	}
	return pages, nil
}
