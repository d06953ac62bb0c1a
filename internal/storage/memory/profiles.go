package memory

import (
	"context"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/google/uuid"
)

// ViewerProfileRepository keeps viewer profiles in process memory.
type ViewerProfileRepository struct {
	rows repo[domain.ViewerProfile]
}

var _ store.ViewerProfileRepository = (*ViewerProfileRepository)(nil)

func NewViewerProfileRepository() *ViewerProfileRepository {
	return &ViewerProfileRepository{
		rows: newRepo(func(p *domain.ViewerProfile) *domain.RecordMeta { return &p.RecordMeta }),
	}
}

func (r *ViewerProfileRepository) Create(ctx context.Context, profile *domain.ViewerProfile) error {
	return r.rows.put(profile, false)
}

func (r *ViewerProfileRepository) Update(ctx context.Context, profile *domain.ViewerProfile) error {
	return r.rows.put(profile, true)
}

func (r *ViewerProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ViewerProfile, error) {
	return r.rows.get(id)
}

func (r *ViewerProfileRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.ViewerProfile], error) {
	return r.rows.list(opts, nil)
}

func (r *ViewerProfileRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.rows.softDelete(id)
}

func (r *ViewerProfileRepository) GetByViewerID(ctx context.Context, viewerID string) (*domain.ViewerProfile, error) {
	result, err := r.rows.list(store.ListOptions{}, func(p *domain.ViewerProfile) bool { return p.ViewerID == viewerID })
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, store.ErrNotFound
	}
	return &result.Items[0], nil
}
