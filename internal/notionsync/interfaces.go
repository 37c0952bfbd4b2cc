package notionsync

import (
	"context"

	"github.com/jomei/notionapi"
)

// NotionService is the slice of the Notion API the mirror needs. It keeps
// the sync logic testable without network access.
type NotionService interface {
	// CreatePage creates a page in a database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// QueryDatabase queries a database, honoring the request's cursor.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)

	// DeletePage archives a page.
	DeletePage(ctx context.Context, pageID string) error
}
