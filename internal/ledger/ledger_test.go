package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"duitbot/internal/domain"
)

type fakeStore struct {
	appendFunc   func(ctx context.Context, row Row) error
	listAllFunc  func(ctx context.Context) ([]Row, error)
	deleteAtFunc func(ctx context.Context, index int) error
}

func (f *fakeStore) Append(ctx context.Context, row Row) error {
	return f.appendFunc(ctx, row)
}

func (f *fakeStore) ListAll(ctx context.Context) ([]Row, error) {
	return f.listAllFunc(ctx)
}

func (f *fakeStore) DeleteAt(ctx context.Context, index int) error {
	return f.deleteAtFunc(ctx, index)
}

// memStore mimics sheet semantics: deletions shift every later row up.
type memStore struct {
	rows []Row
}

func (m *memStore) Append(_ context.Context, r Row) error {
	m.rows = append(m.rows, r)
	return nil
}

func (m *memStore) ListAll(_ context.Context) ([]Row, error) {
	return append([]Row(nil), m.rows...), nil
}

func (m *memStore) DeleteAt(_ context.Context, i int) error {
	if i < 0 || i >= len(m.rows) {
		return fmt.Errorf("index %d out of range", i)
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func testRow(id string, owner int64, date civil.Date, amount float64) Row {
	return Row{
		ID:        id,
		Date:      date,
		Amount:    amount,
		Category:  "Makanan",
		OwnerID:   owner,
		Timestamp: time.Date(2025, 8, 20, 12, 30, 45, 0, time.UTC),
	}
}

func TestRowValuesRoundTrip(t *testing.T) {
	r := Row{
		ID:          "7d2f4a9c-5e7b-4a34-9c1f-2b8d6e0a1f3c",
		Date:        civil.Date{Year: 2025, Month: 8, Day: 20},
		Amount:      -50000,
		Category:    "Makanan",
		Description: "Nasi goreng",
		OwnerID:     820540201,
		Timestamp:   time.Date(2025, 8, 20, 12, 30, 45, 0, time.UTC),
	}

	got := parseRow(rowValues(r))
	if got != r {
		t.Errorf("parseRow(rowValues(r)) = %+v, want %+v", got, r)
	}
}

func TestParseRowLegacySixColumns(t *testing.T) {
	values := []interface{}{"2024-01-15", "250000", "Gaji", "Bonus proyek", "820540201", "2024-01-15 09:00:00"}

	got := parseRow(values)
	if got.ID != "" {
		t.Errorf("legacy row ID = %q, want empty", got.ID)
	}
	if got.Amount != 250000 {
		t.Errorf("Amount = %v, want 250000", got.Amount)
	}
	if got.OwnerID != 820540201 {
		t.Errorf("OwnerID = %d, want 820540201", got.OwnerID)
	}
	want := civil.Date{Year: 2024, Month: 1, Day: 15}
	if got.Date != want {
		t.Errorf("Date = %v, want %v", got.Date, want)
	}
}

func TestParseRowToleratesFormattedCells(t *testing.T) {
	values := []interface{}{"2025-08-20", "-50,000", "Belanja", "Sabun", "820540201", "2025-08-20 10:00:00", ""}

	got := parseRow(values)
	if got.Amount != -50000 {
		t.Errorf("Amount = %v, want -50000 (grouped digits should parse)", got.Amount)
	}
}

func TestParseRowBestEffortOnGarbage(t *testing.T) {
	got := parseRow([]interface{}{"not-a-date", "abc", "Lainnya", "", "??"})
	if got.Date != (civil.Date{}) {
		t.Errorf("Date = %v, want zero", got.Date)
	}
	if got.Amount != 0 {
		t.Errorf("Amount = %v, want 0", got.Amount)
	}
	if got.OwnerID != 0 {
		t.Errorf("OwnerID = %d, want 0", got.OwnerID)
	}
	if got.Category != "Lainnya" {
		t.Errorf("Category = %q, want Lainnya", got.Category)
	}
}

func TestNewRowStampsIDAndTimestamp(t *testing.T) {
	now := time.Date(2025, 8, 26, 14, 0, 0, 0, time.UTC)
	tx := domain.Transaction{
		Date:        civil.Date{Year: 2025, Month: 8, Day: 26},
		Amount:      -75000,
		Type:        domain.TypeExpense,
		Category:    "Transportasi",
		Description: "Bensin motor",
	}

	row := NewRow(tx, 42, now)
	if row.ID == "" {
		t.Error("NewRow should assign a record ID")
	}
	if row.OwnerID != 42 {
		t.Errorf("OwnerID = %d, want 42", row.OwnerID)
	}
	if !row.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", row.Timestamp, now)
	}

	other := NewRow(tx, 42, now)
	if other.ID == row.ID {
		t.Error("record IDs should be unique per row")
	}
}

func TestRowFilters(t *testing.T) {
	d1 := civil.Date{Year: 2025, Month: 8, Day: 18}
	d2 := civil.Date{Year: 2025, Month: 8, Day: 20}
	d3 := civil.Date{Year: 2025, Month: 8, Day: 25}
	rows := []Row{
		testRow("a", 1, d1, -1000),
		testRow("b", 2, d2, -2000),
		testRow("c", 1, d2, 3000),
		testRow("d", 1, d3, -4000),
	}

	if got := OwnerRows(rows, 1); len(got) != 3 || got[0].ID != "a" || got[2].ID != "d" {
		t.Errorf("OwnerRows = %v, want rows a, c, d", got)
	}
	if got := RowsOn(rows, d2); len(got) != 2 {
		t.Errorf("RowsOn(%v) returned %d rows, want 2", d2, len(got))
	}
	if got := RowsBetween(rows, d1, d2); len(got) != 3 {
		t.Errorf("RowsBetween returned %d rows, want 3 (bounds inclusive)", len(got))
	}
	if got := LastN(rows, 2); len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" {
		t.Errorf("LastN(2) = %v, want rows c, d", got)
	}
	if got := LastN(rows, 10); len(got) != 4 {
		t.Errorf("LastN(10) returned %d rows, want all 4", len(got))
	}
	if got := LastN(rows, 0); got != nil {
		t.Errorf("LastN(0) = %v, want nil", got)
	}
}

func TestIndexOf(t *testing.T) {
	ts := time.Date(2025, 8, 20, 12, 30, 45, 0, time.UTC)
	rows := []Row{
		{ID: "a", OwnerID: 1, Timestamp: ts},
		{ID: "", OwnerID: 1, Timestamp: ts},
		{ID: "b", OwnerID: 1, Timestamp: ts},
	}

	// Rows written in the same second used to be indistinguishable; the
	// record ID disambiguates them.
	if got := IndexOf(rows, rows[2]); got != 2 {
		t.Errorf("IndexOf(row b) = %d, want 2", got)
	}
	if got := IndexOf(rows, Row{OwnerID: 1, Timestamp: ts}); got != 1 {
		t.Errorf("IndexOf(legacy row) = %d, want 1 (only ID-less rows match)", got)
	}
	if got := IndexOf(rows, Row{ID: "gone", OwnerID: 1, Timestamp: ts}); got != -1 {
		t.Errorf("IndexOf(missing ID) = %d, want -1, not a timestamp guess", got)
	}
	if got := IndexOf(rows, Row{OwnerID: 2, Timestamp: ts}); got != -1 {
		t.Errorf("IndexOf(wrong owner) = %d, want -1", got)
	}
}

func TestDeleteRowsBottomUp(t *testing.T) {
	d := civil.Date{Year: 2025, Month: 8, Day: 20}
	st := &memStore{rows: []Row{
		testRow("a", 1, d, -1),
		testRow("b", 1, d, -2),
		testRow("c", 1, d, -3),
		testRow("d", 1, d, -4),
		testRow("e", 1, d, -5),
	}}
	all, _ := st.ListAll(context.Background())

	deleted, err := DeleteRows(context.Background(), st, all, []Row{all[1], all[3]})
	if err != nil {
		t.Fatalf("DeleteRows() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	// Deleting top-down would have removed b and then the row that
	// shifted into d's old index.
	want := []string{"a", "c", "e"}
	if len(st.rows) != len(want) {
		t.Fatalf("remaining rows = %d, want %d", len(st.rows), len(want))
	}
	for i, id := range want {
		if st.rows[i].ID != id {
			t.Errorf("remaining[%d].ID = %q, want %q", i, st.rows[i].ID, id)
		}
	}
}

func TestDeleteRowsSkipsMissingTargets(t *testing.T) {
	d := civil.Date{Year: 2025, Month: 8, Day: 20}
	st := &memStore{rows: []Row{testRow("a", 1, d, -1)}}
	all, _ := st.ListAll(context.Background())

	deleted, err := DeleteRows(context.Background(), st, all, []Row{testRow("zz", 1, d, -9)})
	if err != nil {
		t.Fatalf("DeleteRows() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
	if len(st.rows) != 1 {
		t.Errorf("store should be untouched, has %d rows", len(st.rows))
	}
}

func TestAppendBatchContinuesAfterFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	var appended []string
	st := &fakeStore{
		appendFunc: func(_ context.Context, row Row) error {
			if row.ID == "bad" {
				return boom
			}
			appended = append(appended, row.ID)
			return nil
		},
	}

	d := civil.Date{Year: 2025, Month: 8, Day: 20}
	rows := []Row{testRow("ok1", 1, d, -1), testRow("bad", 1, d, -2), testRow("ok2", 1, d, -3)}

	n, err := AppendBatch(context.Background(), st, rows, 0)
	if n != 2 {
		t.Errorf("AppendBatch() appended = %d, want 2", n)
	}
	if !errors.Is(err, boom) {
		t.Errorf("AppendBatch() error = %v, want %v", err, boom)
	}
	if len(appended) != 2 || appended[0] != "ok1" || appended[1] != "ok2" {
		t.Errorf("appended order = %v, want [ok1 ok2]", appended)
	}
}

func TestAppendBatchStopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	st := &fakeStore{
		appendFunc: func(context.Context, Row) error {
			count++
			cancel()
			return nil
		},
	}

	d := civil.Date{Year: 2025, Month: 8, Day: 20}
	rows := []Row{testRow("a", 1, d, -1), testRow("b", 1, d, -2)}

	n, err := AppendBatch(ctx, st, rows, time.Millisecond)
	if n != 1 || count != 1 {
		t.Errorf("AppendBatch() appended = %d (calls %d), want 1", n, count)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("AppendBatch() error = %v, want context.Canceled", err)
	}
}

func TestUnavailableStore(t *testing.T) {
	var st Store = Unavailable{}

	if err := st.Append(context.Background(), Row{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Append error = %v, want ErrUnavailable", err)
	}
	if _, err := st.ListAll(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ListAll error = %v, want ErrUnavailable", err)
	}
	if err := st.DeleteAt(context.Background(), 0); !errors.Is(err, ErrUnavailable) {
		t.Errorf("DeleteAt error = %v, want ErrUnavailable", err)
	}
}

func TestSpreadsheetURL(t *testing.T) {
	got := SpreadsheetURL("abc123")
	want := "https://docs.google.com/spreadsheets/d/abc123"
	if got != want {
		t.Errorf("SpreadsheetURL = %q, want %q", got, want)
	}
}
