package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Client implements NotionService with the official SDK.
type Client struct {
	client *notionapi.Client
}

// NewClient creates a client authenticated with an integration token.
func NewClient(token string) *Client {
	return &Client{client: notionapi.NewClient(notionapi.Token(token))}
}

func (c *Client) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	}
	page, err := c.client.Page.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return page, nil
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("query database: %w", err)
	}
	return resp, nil
}

// DeletePage archives the page; the Notion API has no hard delete.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	req := &notionapi.PageUpdateRequest{Archived: true}
	if _, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), req); err != nil {
		return fmt.Errorf("archive page: %w", err)
	}
	return nil
}

var _ NotionService = (*Client)(nil)
