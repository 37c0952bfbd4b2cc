package ledger

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Options configures the Google Sheets backend.
type Options struct {
	// CredentialsFile points at a service-account JSON key on disk.
	// CredentialsJSON carries the key inline and wins when both are set.
	CredentialsFile string
	CredentialsJSON string
	SpreadsheetID   string
	SheetName       string
}

// SheetsStore stores rows in one worksheet via the Sheets API v4.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string

	mu      sync.Mutex
	sheetID int64 // numeric gid of sheetName, -1 until resolved
}

// NewSheetsStore builds a store from service-account credentials.
func NewSheetsStore(ctx context.Context, opts Options) (*SheetsStore, error) {
	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case opts.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.CredentialsJSON)))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     opts.SheetName,
		sheetID:       -1,
	}, nil
}

// EnsureHeader writes the header row on a fresh worksheet. An existing
// header, including the six-column layout from before record IDs, is left
// untouched.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A1:G1").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("reading header row: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, s.sheetName+"!A1", &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	return nil
}

func (s *SheetsStore) Append(ctx context.Context, row Row) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{rowValues(row)}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A:G", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending ledger row: %w", err)
	}
	return nil
}

func (s *SheetsStore) ListAll(ctx context.Context) ([]Row, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A2:G").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading ledger rows: %w", err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, values := range resp.Values {
		rows = append(rows, parseRow(values))
	}
	return rows, nil
}

func (s *SheetsStore) DeleteAt(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("row index %d out of range", index)
	}
	sheetID, err := s.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:   sheetID,
					Dimension: "ROWS",
					// Grid row 0 is the header.
					StartIndex: int64(index + 1),
					EndIndex:   int64(index + 2),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting ledger row %d: %w", index, err)
	}
	return nil
}

// resolveSheetID looks up the numeric grid ID of the worksheet once and
// caches it; DeleteDimension requests address sheets by grid ID, not name.
func (s *SheetsStore) resolveSheetID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheetID >= 0 {
		return s.sheetID, nil
	}

	sp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("loading spreadsheet metadata: %w", err)
	}
	for _, sh := range sp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			s.sheetID = sh.Properties.SheetId
			return s.sheetID, nil
		}
	}
	return 0, fmt.Errorf("worksheet %q not found in spreadsheet", s.sheetName)
}

var _ Store = (*SheetsStore)(nil)
