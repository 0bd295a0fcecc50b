package main

import (
	"context"
	"io"
	"net/http"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/extractor"
	"github.com/aleister1102/pagewatch/internal/httpclient"
	"github.com/aleister1102/pagewatch/internal/monitor"
	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/rs/zerolog"
)

// app holds the wired components for one process.
type app struct {
	cfg       *config.GlobalConfig
	logger    zerolog.Logger
	email     *notifier.EmailNotifier
	history   *datastore.HistoryStore
	scheduler *monitor.Scheduler
	service   *monitor.Service
}

func newApp(cfg *config.GlobalConfig, log zerolog.Logger, opts ...monitor.ServiceOption) (*app, error) {
	a := &app{cfg: cfg, logger: log}

	client, err := httpclient.NewHTTPClientBuilder(log).
		WithConfig(httpclient.FromFetcherConfig(cfg.FetcherConfig)).
		Build()
	if err != nil {
		return nil, err
	}

	baselines, err := datastore.NewFileBaselineStore(cfg.StorageConfig.PagesDir, log)
	if err != nil {
		return nil, err
	}

	a.scheduler, err = monitor.NewScheduler(cfg.MonitoredPages())
	if err != nil {
		return nil, err
	}

	notify, err := a.buildNotifier(client)
	if err != nil {
		return nil, err
	}

	sinks := monitor.MultiSink{monitor.NewLogSink(log)}
	if cfg.StorageConfig.HistoryDBPath != "" {
		a.history, err = datastore.NewHistoryStore(cfg.StorageConfig.HistoryDBPath, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, monitor.NewHistorySink(a.history, log))
	}

	pipeline := monitor.NewCheckPipeline(monitor.PipelineDeps{
		Fetcher:   monitor.NewFetcher(client, cfg.FetcherConfig, log),
		Extractor: extractor.New(log),
		Baselines: baselines,
		Differ:    differ.New(),
		Notifier:  notify,
		Scheduler: a.scheduler,
		Sink:      sinks,
		Subject:   cfg.EmailConfig.Subject,
		Logger:    log,
	})

	a.service = monitor.NewService(a.scheduler, pipeline, log, opts...)
	return a, nil
}

func (a *app) buildNotifier(client *http.Client) (notifier.Notifier, error) {
	var notifiers []notifier.Notifier

	if a.cfg.EmailConfig.Enabled {
		email, err := notifier.NewEmailNotifier(a.cfg.EmailConfig, a.logger)
		if err != nil {
			return nil, err
		}
		a.email = email
		notifiers = append(notifiers, email)
	}
	if a.cfg.DiscordConfig.Enabled {
		discord, err := notifier.NewDiscordNotifier(a.cfg.DiscordConfig.WebhookURL, client, a.logger,
			notifier.WithDiscordAvatar(a.cfg.DiscordConfig.AvatarURL))
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, discord)
	}

	if len(notifiers) == 0 {
		a.logger.Warn().Msg("No notifier enabled, outcomes will only be logged")
		return notifier.NopNotifier{}, nil
	}
	return notifier.NewMultiNotifier(notifiers...), nil
}

// verifyEmail logs in to the SMTP server once when configured to do so.
func (a *app) verifyEmail(ctx context.Context) error {
	if a.email == nil || !a.cfg.EmailConfig.VerifyOnStartup {
		return nil
	}
	if err := a.email.Verify(ctx); err != nil {
		return common.WrapError(err, "unable to connect to email account")
	}
	return nil
}

func (a *app) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

// closeLogged closes c and logs a failure instead of dropping it. Meant for defer.
func closeLogged(c io.Closer, log zerolog.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msgf("Failed to close %s", what)
	}
}
