// Command sync-notion mirrors the spreadsheet ledger into a Notion
// database, keyed by each row's Record ID.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"duitbot/internal/config"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/notionsync"
)

func main() {
	notionToken := flag.String("notion-token", "", "Notion API token (defaults to NOTION_TOKEN)")
	notionDBID := flag.String("notion-db-id", "", "Notion database ID (defaults to NOTION_DATABASE_ID)")
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to Notion")
	flag.Parse()

	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration failed")
	}

	token := *notionToken
	if token == "" {
		token = cfg.Notion.Token
	}
	databaseID := *notionDBID
	if databaseID == "" {
		databaseID = cfg.Notion.DatabaseID
	}
	if token == "" {
		log.Fatal().Msg("--notion-token or NOTION_TOKEN is required")
	}
	if databaseID == "" {
		log.Fatal().Msg("--notion-db-id or NOTION_DATABASE_ID is required")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatal().Msg("no spreadsheet configured; set SPREADSHEET_ID")
	}

	// Bounded so a stuck API call cannot hang the CLI.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	store, err := ledger.NewSheetsStore(ctx, ledger.Options{
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SheetName:       cfg.Sheets.SheetName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to sheets failed")
	}

	rows, err := store.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reading ledger rows failed")
	}

	stats, err := notionsync.Sync(ctx, rows, notionsync.NewClient(token), databaseID, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Msg("notion sync failed")
	}

	log.Info().
		Int("created", stats.Created).
		Int("deleted", stats.Deleted).
		Int("skipped", stats.Skipped).
		Bool("dry_run", *dryRun).
		Msg("sync finished")
}
