package summaries

import (
	"context"
	"time"

	"github.com/kuitang/crm-notes/internal/notebody"
)

// Record is a raw engagement record as returned by the store. The store
// assigns ID and CreatedAt at creation; both are immutable afterwards.
type Record struct {
	ID        string
	CreatedAt time.Time
	Body      string
}

// Store is the record store gateway contract. Implementations perform one
// blocking round trip per call; timeout and retry policy, if any, belongs
// to the implementation, not to this package.
type Store interface {
	// ListPage returns at most one page of records, newest-first order is
	// not guaranteed by the store.
	ListPage(ctx context.Context, maxCount int) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// Create persists a new record with the given body blob and returns the
	// assigned identifier. The association target is fixed at construction.
	Create(ctx context.Context, body string) (string, error)
	UpdateBody(ctx context.Context, id, body string) error
	Delete(ctx context.Context, id string) error
}

// Criteria narrows a record set. All predicates are AND-combined; zero
// values mean "always true". It lives only for the duration of one request.
type Criteria struct {
	// Date matches records whose CreatedAt UTC calendar date equals this
	// YYYY-MM-DD string exactly.
	Date string
	// DayOfWeek is a weekday name, case-insensitive, full names only.
	DayOfWeek string
	// TimeStart and TimeEnd bound the record's zero-padded HH:MM
	// time-of-day (server local time), inclusive on both ends. The
	// comparison is lexicographic, which is numerically correct only
	// because callers supply zero-padded values.
	TimeStart string
	TimeEnd   string
	// Query matches records whose body blob contains it as a
	// case-insensitive substring.
	Query string
	// Limit truncates the result after sorting. Nil means no cap for
	// listing; resolution paths default it to 1. Non-positive values are
	// rejected.
	Limit *int
}

// ListItem is a record with its decoded note fields, as returned by List.
type ListItem struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Fields    notebody.Fields `json:"fields"`
}

// CreateParams contains the three note fields for Create. All are required.
type CreateParams struct {
	Title   string
	Summary string
	Author  string
}

// UpdateParams identifies the update target and carries the partial field
// set to merge. ID wins when supplied; otherwise Query must be non-empty.
type UpdateParams struct {
	ID     string
	Query  string
	Fields notebody.Fields
}
