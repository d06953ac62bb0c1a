package bunrepo

import (
	"context"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DeliveryRecordRepository persists journal records through bun.
type DeliveryRecordRepository struct {
	crud crud[domain.DeliveryRecord]
}

var _ store.DeliveryRecordRepository = (*DeliveryRecordRepository)(nil)

func NewDeliveryRecordRepository(db *bun.DB) *DeliveryRecordRepository {
	return &DeliveryRecordRepository{
		crud: newCRUD(db, repository.ModelHandlers[*domain.DeliveryRecord]{
			NewRecord:          func() *domain.DeliveryRecord { return &domain.DeliveryRecord{} },
			GetID:              func(d *domain.DeliveryRecord) uuid.UUID { return d.ID },
			SetID:              func(d *domain.DeliveryRecord, id uuid.UUID) { d.ID = id },
			GetIdentifier:      func() string { return "id" },
			GetIdentifierValue: func(d *domain.DeliveryRecord) string { return d.ID.String() },
		}, func(d *domain.DeliveryRecord) *domain.RecordMeta { return &d.RecordMeta }),
	}
}

func (r *DeliveryRecordRepository) Create(ctx context.Context, record *domain.DeliveryRecord) error {
	if record.Status == "" {
		record.Status = domain.DeliveryStatusDelivered
	}
	return r.crud.create(ctx, record)
}

func (r *DeliveryRecordRepository) Update(ctx context.Context, record *domain.DeliveryRecord) error {
	return r.crud.update(ctx, record)
}

func (r *DeliveryRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryRecord, error) {
	return r.crud.get(ctx, id)
}

func (r *DeliveryRecordRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.crud.list(ctx, opts)
}

func (r *DeliveryRecordRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.crud.softDelete(ctx, id)
}

func (r *DeliveryRecordRepository) ListByViewer(ctx context.Context, viewerID string, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.crud.list(ctx, opts, byViewer(viewerID))
}

func (r *DeliveryRecordRepository) ListByKind(ctx context.Context, kind string, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.crud.list(ctx, opts, byKind(kind))
}
