// Package notionsync mirrors the Google Sheets ledger into a Notion
// database, keyed by each row's Record ID.
package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"duitbot/internal/ledger"
	"duitbot/internal/logger"
)

const queryPageSize = 100

// Stats counts what one sync pass did (or, in a dry run, would do).
type Stats struct {
	Created int
	Deleted int
	Skipped int
}

// Sync reconciles rows against the Notion database: pages whose Record ID
// is no longer in rows are archived, rows without a page are created, and
// matches are left alone. Legacy rows without a Record ID cannot be
// tracked and count as skipped. Per-page failures are logged and skipped
// so one bad page never aborts the pass.
func Sync(ctx context.Context, rows []ledger.Row, svc NotionService, databaseID string, dryRun bool) (Stats, error) {
	log := logger.FromContext(ctx)
	var stats Stats

	valid := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			stats.Skipped++
			continue
		}
		valid[row.ID] = true
	}

	pages, err := queryAllPages(ctx, svc, databaseID)
	if err != nil {
		return stats, fmt.Errorf("query notion pages: %w", err)
	}
	log.Info().
		Int("rows", len(rows)).
		Int("pages", len(pages)).
		Bool("dry_run", dryRun).
		Msg("starting notion sync")

	existing := make(map[string]bool, len(pages))
	for _, page := range pages {
		id := recordID(page)

		// Pages without a record ID or no longer in the sheet are stale.
		if id == "" || !valid[id] {
			if dryRun {
				log.Info().
					Str("record_id", id).
					Str("page_id", string(page.ID)).
					Msg("dry run: would archive stale page")
				stats.Deleted++
				continue
			}
			if err := svc.DeletePage(ctx, string(page.ID)); err != nil {
				log.Warn().
					Err(err).
					Str("record_id", id).
					Str("page_id", string(page.ID)).
					Msg("archive stale page failed")
				continue
			}
			stats.Deleted++
			continue
		}
		existing[id] = true
	}

	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		if existing[row.ID] {
			stats.Skipped++
			continue
		}
		if dryRun {
			log.Info().Str("record_id", row.ID).Msg("dry run: would create page")
			stats.Created++
			continue
		}
		if _, err := svc.CreatePage(ctx, databaseID, RowProperties(row)); err != nil {
			log.Warn().Err(err).Str("record_id", row.ID).Msg("create page failed")
			continue
		}
		stats.Created++
	}

	log.Info().
		Int("created", stats.Created).
		Int("deleted", stats.Deleted).
		Int("skipped", stats.Skipped).
		Msg("notion sync completed")
	return stats, nil
}

// queryAllPages drains the database query cursor by cursor.
func queryAllPages(ctx context.Context, svc NotionService, databaseID string) ([]notionapi.Page, error) {
	var all []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{PageSize: queryPageSize}
		if cursor != "" {
			req.StartCursor = cursor
		}
		resp, err := svc.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}
	return all, nil
}
