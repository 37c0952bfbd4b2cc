package ledger

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// OwnerRows filters rows belonging to one user, preserving sheet order.
func OwnerRows(rows []Row, owner int64) []Row {
	var out []Row
	for _, r := range rows {
		if r.OwnerID == owner {
			out = append(out, r)
		}
	}
	return out
}

// RowsOn filters rows dated exactly d.
func RowsOn(rows []Row, d civil.Date) []Row {
	var out []Row
	for _, r := range rows {
		if r.Date == d {
			out = append(out, r)
		}
	}
	return out
}

// RowsBetween filters rows with start <= date <= end, inclusive on both
// sides.
func RowsBetween(rows []Row, start, end civil.Date) []Row {
	var out []Row
	for _, r := range rows {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// LastN returns up to n trailing rows, preserving order.
func LastN(rows []Row, n int) []Row {
	if n <= 0 || len(rows) == 0 {
		return nil
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// IndexOf locates target within rows. Rows carrying a record ID match only
// on that ID; legacy rows without one fall back to the (owner, recording
// timestamp) pair, which can collide for rows written within the same
// second. Returns -1 when not found.
func IndexOf(rows []Row, target Row) int {
	if target.ID != "" {
		for i, r := range rows {
			if r.ID == target.ID {
				return i
			}
		}
		return -1
	}

	ts := target.Timestamp.Format(TimestampFormat)
	for i, r := range rows {
		if r.ID == "" && r.OwnerID == target.OwnerID && r.Timestamp.Format(TimestampFormat) == ts {
			return i
		}
	}
	return -1
}

// DeleteRows removes the target rows from the store, deleting bottom-up so
// earlier deletions do not shift the remaining indices. all must be the
// ListAll snapshot the targets were picked from. Returns the number of rows
// removed and the first error encountered.
func DeleteRows(ctx context.Context, st Store, all []Row, targets []Row) (int, error) {
	indices := make([]int, 0, len(targets))
	for _, t := range targets {
		if i := IndexOf(all, t); i >= 0 {
			indices = append(indices, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))

	deleted := 0
	var firstErr error
	for _, i := range indices {
		if err := st.DeleteAt(ctx, i); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}

// AppendBatch appends rows one by one, pacing writes to stay under the
// Sheets API write quota. It keeps going after individual failures and
// returns the success count alongside the first error.
func AppendBatch(ctx context.Context, st Store, rows []Row, pace time.Duration) (int, error) {
	appended := 0
	var firstErr error
	for i, row := range rows {
		if i > 0 && pace > 0 {
			t := time.NewTimer(pace)
			select {
			case <-ctx.Done():
				t.Stop()
				if firstErr == nil {
					firstErr = ctx.Err()
				}
				return appended, firstErr
			case <-t.C:
			}
		}
		if err := st.Append(ctx, row); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		appended++
	}
	return appended, firstErr
}
