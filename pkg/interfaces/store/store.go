package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record cannot be located.
var ErrNotFound = errors.New("store: not found")

// DefaultListLimit bounds List calls that do not ask for a page size.
const DefaultListLimit = 50

// ListOptions carries the pagination and filter knobs shared by every
// repository. Zero values mean "no constraint"; Since/Until filter on
// the record's creation time.
type ListOptions struct {
	Limit              int
	Offset             int
	Since              time.Time
	Until              time.Time
	IncludeSoftDeleted bool
}

// Window normalizes Limit and Offset for backends: negative offsets
// collapse to zero and a missing limit becomes DefaultListLimit.
func (o ListOptions) Window() (limit, offset int) {
	limit = o.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset = o.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListResult pairs one page of records with the total match count.
type ListResult[T any] struct {
	Items []T
	Total int
}

// TransactionManager runs repository work inside a single transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactionManager runs the callback immediately. It backs the
// memory providers, where there is nothing transactional to coordinate.
type NopTransactionManager struct{}

var _ TransactionManager = (*NopTransactionManager)(nil)

func (n *NopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}
