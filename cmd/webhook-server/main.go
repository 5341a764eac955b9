package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldops/survey-notifier/internal/attachment"
	"github.com/fieldops/survey-notifier/internal/config"
	"github.com/fieldops/survey-notifier/internal/ledger"
	"github.com/fieldops/survey-notifier/internal/logger"
	"github.com/fieldops/survey-notifier/internal/mailer"
	"github.com/fieldops/survey-notifier/internal/webhook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fail("config load", err)
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fail("logger init", err)
	}
	log := baseLogger.With().Str("service", "webhook-server").Logger()

	fetcher := attachment.New(cfg.Attachment, log.With().Str("component", "attachment-fetcher").Logger())

	sender, err := mailer.NewSMTPSender(cfg.SMTP, log.With().Str("component", "smtp-sender").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise smtp sender")
	}

	var recorder ledger.Recorder
	if cfg.Sheets.Enabled() {
		recorder, err = ledger.NewSheetsRecorder(ctx, cfg.Sheets, log.With().Str("component", "sheets-recorder").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise sheets recorder")
		}
	} else {
		log.Warn().Msg("ledger credentials not configured; submissions will not be mirrored")
		recorder = ledger.NewNoop(log.With().Str("component", "ledger").Logger())
	}

	handler, err := webhook.NewHandler(webhook.Dependencies{
		Logger:            log.With().Str("component", "webhook-handler").Logger(),
		Fetcher:           fetcher,
		Sender:            sender,
		Recorder:          recorder,
		FallbackRecipient: cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise webhook handler")
	}

	router := webhook.NewRouter(handler, log.With().Str("component", "router").Logger())

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info().Int("port", cfg.App.Port).Msg("webhook server started")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server terminated with error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("webhook server init failed")
}
