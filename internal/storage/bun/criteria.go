package bunrepo

import (
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func byID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	}
}

func byViewer(viewerID string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("viewer_id = ?", viewerID)
	}
}

func byKind(kind string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("kind = ?", kind)
	}
}

func notDeleted() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("deleted_at IS NULL")
	}
}

// pageOf translates ListOptions into query clauses. Ordering matches the
// memory backend: creation time ascending with the id as tie-break.
func pageOf(opts store.ListOptions) repository.SelectCriteria {
	limit, offset := opts.Window()
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if !opts.IncludeSoftDeleted {
			q = q.Where("deleted_at IS NULL")
		}
		if !opts.Since.IsZero() {
			q = q.Where("created_at >= ?", opts.Since)
		}
		if !opts.Until.IsZero() {
			q = q.Where("created_at <= ?", opts.Until)
		}
		q = q.Order("created_at ASC", "id ASC").Limit(limit)
		if offset > 0 {
			q = q.Offset(offset)
		}
		return q
	}
}
