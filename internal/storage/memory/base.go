package memory

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/google/uuid"
)

// repo is the map-backed core shared by the entity repositories. Rows are
// stored by value so callers never hold aliases into the map.
type repo[T any] struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]T
	meta func(*T) *domain.RecordMeta
}

func newRepo[T any](meta func(*T) *domain.RecordMeta) repo[T] {
	return repo[T]{rows: make(map[uuid.UUID]T), meta: meta}
}

// put writes a row. In insert mode it assigns the id and creation stamp;
// in update mode the row must already exist.
func (r *repo[T]) put(record *T, mustExist bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.meta(record)
	now := time.Now().UTC()
	if mustExist {
		if m.ID == uuid.Nil {
			return store.ErrNotFound
		}
		if _, ok := r.rows[m.ID]; !ok {
			return store.ErrNotFound
		}
	} else {
		m.EnsureID()
	}
	m.Touch(now)
	r.rows[m.ID] = *record
	return nil
}

func (r *repo[T]) get(id uuid.UUID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok || !r.meta(&row).DeletedAt.IsZero() {
		return nil, store.ErrNotFound
	}
	return &row, nil
}

// list returns the page of rows passing the option filters and the keep
// predicate (all rows when keep is nil), ordered by creation time with
// the id as tie-break so pages are stable.
func (r *repo[T]) list(opts store.ListOptions, keep func(*T) bool) (store.ListResult[T], error) {
	r.mu.RLock()
	matches := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		if !r.visible(&row, opts) {
			continue
		}
		if keep != nil && !keep(&row) {
			continue
		}
		matches = append(matches, row)
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		mi, mj := r.meta(&matches[i]), r.meta(&matches[j])
		if !mi.CreatedAt.Equal(mj.CreatedAt) {
			return mi.CreatedAt.Before(mj.CreatedAt)
		}
		return bytes.Compare(mi.ID[:], mj.ID[:]) < 0
	})

	limit, offset := opts.Window()
	total := len(matches)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return store.ListResult[T]{Items: matches[offset:end], Total: total}, nil
}

func (r *repo[T]) visible(row *T, opts store.ListOptions) bool {
	m := r.meta(row)
	if !opts.IncludeSoftDeleted && !m.DeletedAt.IsZero() {
		return false
	}
	if !opts.Since.IsZero() && m.CreatedAt.Before(opts.Since) {
		return false
	}
	if !opts.Until.IsZero() && m.CreatedAt.After(opts.Until) {
		return false
	}
	return true
}

func (r *repo[T]) softDelete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	m := r.meta(&row)
	if m.DeletedAt.IsZero() {
		m.DeletedAt = time.Now().UTC()
		r.rows[id] = row
	}
	return nil
}
