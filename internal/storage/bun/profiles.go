package bunrepo

import (
	"context"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ViewerProfileRepository persists viewer profiles through bun.
type ViewerProfileRepository struct {
	crud crud[domain.ViewerProfile]
}

var _ store.ViewerProfileRepository = (*ViewerProfileRepository)(nil)

func NewViewerProfileRepository(db *bun.DB) *ViewerProfileRepository {
	return &ViewerProfileRepository{
		crud: newCRUD(db, repository.ModelHandlers[*domain.ViewerProfile]{
			NewRecord:          func() *domain.ViewerProfile { return &domain.ViewerProfile{} },
			GetID:              func(p *domain.ViewerProfile) uuid.UUID { return p.ID },
			SetID:              func(p *domain.ViewerProfile, id uuid.UUID) { p.ID = id },
			GetIdentifier:      func() string { return "id" },
			GetIdentifierValue: func(p *domain.ViewerProfile) string { return p.ID.String() },
		}, func(p *domain.ViewerProfile) *domain.RecordMeta { return &p.RecordMeta }),
	}
}

func (r *ViewerProfileRepository) Create(ctx context.Context, profile *domain.ViewerProfile) error {
	return r.crud.create(ctx, profile)
}

func (r *ViewerProfileRepository) Update(ctx context.Context, profile *domain.ViewerProfile) error {
	return r.crud.update(ctx, profile)
}

func (r *ViewerProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ViewerProfile, error) {
	return r.crud.get(ctx, id)
}

func (r *ViewerProfileRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.ViewerProfile], error) {
	return r.crud.list(ctx, opts)
}

func (r *ViewerProfileRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.crud.softDelete(ctx, id)
}

func (r *ViewerProfileRepository) GetByViewerID(ctx context.Context, viewerID string) (*domain.ViewerProfile, error) {
	row, err := r.crud.rows.Get(ctx, byViewer(viewerID), notDeleted())
	if err != nil {
		return nil, asStoreErr(err)
	}
	return row, nil
}
