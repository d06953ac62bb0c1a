package store

import (
	"context"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/google/uuid"
)

// Repository is the CRUD surface every entity store implements. Deletes
// are soft: SoftDelete stamps the record and List hides it unless
// IncludeSoftDeleted is set.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, opts ListOptions) (ListResult[T], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DeliveryRecordRepository stores the journal trail of delivered events.
type DeliveryRecordRepository interface {
	Repository[domain.DeliveryRecord]
	ListByViewer(ctx context.Context, viewerID string, opts ListOptions) (ListResult[domain.DeliveryRecord], error)
	ListByKind(ctx context.Context, kind string, opts ListOptions) (ListResult[domain.DeliveryRecord], error)
}

// ViewerProfileRepository stores per-viewer delivery profiles keyed by
// the external viewer id.
type ViewerProfileRepository interface {
	Repository[domain.ViewerProfile]
	GetByViewerID(ctx context.Context, viewerID string) (*domain.ViewerProfile, error)
}
