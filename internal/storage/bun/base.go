package bunrepo

import (
	"context"
	"time"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// crud wraps a go-repository-bun repository with the audit stamping and
// error mapping shared by the entity repositories.
type crud[T any] struct {
	rows repository.Repository[*T]
	meta func(*T) *domain.RecordMeta
}

func newCRUD[T any](db *bun.DB, handlers repository.ModelHandlers[*T], meta func(*T) *domain.RecordMeta) crud[T] {
	return crud[T]{
		rows: repository.MustNewRepository[*T](db, handlers),
		meta: meta,
	}
}

func (r crud[T]) create(ctx context.Context, record *T) error {
	m := r.meta(record)
	m.EnsureID()
	m.Touch(time.Now().UTC())
	_, err := r.rows.Create(ctx, record)
	return asStoreErr(err)
}

func (r crud[T]) update(ctx context.Context, record *T) error {
	r.meta(record).Touch(time.Now().UTC())
	_, err := r.rows.Update(ctx, record)
	return asStoreErr(err)
}

func (r crud[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	row, err := r.rows.Get(ctx, byID(id), notDeleted())
	if err != nil {
		return nil, asStoreErr(err)
	}
	return row, nil
}

// list applies the shared option filters plus any entity criteria, such
// as a viewer or kind restriction.
func (r crud[T]) list(ctx context.Context, opts store.ListOptions, extra ...repository.SelectCriteria) (store.ListResult[T], error) {
	criteria := append([]repository.SelectCriteria{pageOf(opts)}, extra...)
	rows, total, err := r.rows.List(ctx, criteria...)
	if err != nil {
		return store.ListResult[T]{}, asStoreErr(err)
	}
	out := store.ListResult[T]{Items: make([]T, len(rows)), Total: total}
	for i, row := range rows {
		out.Items[i] = *row
	}
	return out, nil
}

// softDelete stamps the row once; deleting again is a no-op.
func (r crud[T]) softDelete(ctx context.Context, id uuid.UUID) error {
	row, err := r.rows.Get(ctx, byID(id))
	if err != nil {
		return asStoreErr(err)
	}
	m := r.meta(row)
	if !m.DeletedAt.IsZero() {
		return nil
	}
	m.DeletedAt = time.Now().UTC()
	_, err = r.rows.Update(ctx, row)
	return asStoreErr(err)
}

func asStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case repository.IsRecordNotFound(err):
		return store.ErrNotFound
	default:
		return err
	}
}
