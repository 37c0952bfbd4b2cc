package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"duitbot/internal/archive"
	"duitbot/internal/bot"
	"duitbot/internal/classify"
	"duitbot/internal/config"
	"duitbot/internal/convo"
	"duitbot/internal/extract"
	"duitbot/internal/housekeep"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/prefs"
)

const sweeperBufferSize = 64

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg := logger.New("")
		lg.Fatal().Err(err).Msg("loading configuration failed")
	}
	log := logger.New(cfg.Logger.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	defer cancel()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone, using UTC")
		loc = time.UTC
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("rules", cfg.Classifier.RulesFile).Msg("loading category rules failed")
	}

	completer, err := extract.NewGeminiCompleter(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("creating gemini client failed")
	}
	extractor := extract.New(completer, classifier, loc)

	store := buildStore(ctx, cfg, log)

	prefStore, err := prefs.Open(cfg.Prefs.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Prefs.DataDir).Msg("opening preferences database failed")
	}
	defer prefStore.Close()

	archiver := buildArchiver(ctx, cfg, log)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("creating telegram client failed")
	}
	log.Info().Str("username", api.Self.UserName).Msg("authenticated with telegram")

	sweeper := housekeep.NewSweeper(bot.MessageDeleter{API: api}, prefStore, sweeperBufferSize)
	sweeper.Start(ctx)

	contexts := convo.NewStore()
	machine := convo.NewMachine(contexts, extractor, store)
	b := bot.New(bot.Options{
		API:           api,
		Machine:       machine,
		Contexts:      contexts,
		Receipts:      extractor,
		Store:         store,
		Prefs:         prefStore,
		Sweeper:       sweeper,
		Archiver:      archiver,
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		AllowedUsers:  cfg.Telegram.AllowedUsers,
	})

	if _, err := api.Request(tgbotapi.NewSetMyCommands(bot.Commands()...)); err != nil {
		log.Warn().Err(err).Msg("registering bot commands failed")
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	go b.Run(ctx, api.GetUpdatesChan(updateCfg))

	log.Info().
		Int("allowed_users", len(cfg.Telegram.AllowedUsers)).
		Str("model", cfg.Gemini.Model).
		Str("timezone", cfg.Timezone).
		Msg("duitbot started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	api.StopReceivingUpdates()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := sweeper.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("sweeper shutdown failed")
	}

	log.Info().Msg("duitbot exited")
}

func buildClassifier(cfg *config.Config) (*classify.Classifier, error) {
	if cfg.Classifier.RulesFile == "" {
		return classify.New(), nil
	}
	return classify.FromFile(cfg.Classifier.RulesFile)
}

// buildStore returns the sheets-backed ledger, or the unavailable variant
// when credentials are missing. The bot still runs without a sheet; every
// store operation then answers with the contact-administrator message.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) ledger.Store {
	if cfg.Sheets.SpreadsheetID == "" {
		log.Warn().Msg("no spreadsheet configured, ledger disabled")
		return ledger.Unavailable{}
	}
	if cfg.Sheets.CredentialsJSON == "" {
		if _, err := os.Stat(cfg.Sheets.CredentialsFile); err != nil {
			log.Warn().Err(err).Str("file", cfg.Sheets.CredentialsFile).
				Msg("sheets credentials missing, ledger disabled")
			return ledger.Unavailable{}
		}
	}

	store, err := ledger.NewSheetsStore(ctx, ledger.Options{
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SheetName:       cfg.Sheets.SheetName,
	})
	if err != nil {
		log.Warn().Err(err).Msg("connecting to sheets failed, ledger disabled")
		return ledger.Unavailable{}
	}
	if err := store.EnsureHeader(ctx); err != nil {
		log.Warn().Err(err).Msg("verifying sheet header failed, ledger disabled")
		return ledger.Unavailable{}
	}

	log.Info().Str("spreadsheet_id", cfg.Sheets.SpreadsheetID).Str("sheet", cfg.Sheets.SheetName).
		Msg("ledger connected")
	return store
}

// buildArchiver wires the optional GCS receipt archive.
func buildArchiver(ctx context.Context, cfg *config.Config, log zerolog.Logger) archive.Archiver {
	if cfg.Archive.Bucket == "" {
		return archive.Nop{}
	}
	gcs, err := archive.NewGCS(ctx, cfg.Archive.Bucket)
	if err != nil {
		log.Warn().Err(err).Str("bucket", cfg.Archive.Bucket).
			Msg("creating receipt archive failed, archival disabled")
		return archive.Nop{}
	}
	log.Info().Str("bucket", cfg.Archive.Bucket).Msg("receipt archival enabled")
	return gcs
}
