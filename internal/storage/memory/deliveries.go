package memory

import (
	"context"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/google/uuid"
)

// DeliveryRecordRepository keeps delivery records in process memory.
type DeliveryRecordRepository struct {
	rows repo[domain.DeliveryRecord]
}

var _ store.DeliveryRecordRepository = (*DeliveryRecordRepository)(nil)

func NewDeliveryRecordRepository() *DeliveryRecordRepository {
	return &DeliveryRecordRepository{
		rows: newRepo(func(d *domain.DeliveryRecord) *domain.RecordMeta { return &d.RecordMeta }),
	}
}

func (r *DeliveryRecordRepository) Create(ctx context.Context, record *domain.DeliveryRecord) error {
	if record.Status == "" {
		record.Status = domain.DeliveryStatusDelivered
	}
	return r.rows.put(record, false)
}

func (r *DeliveryRecordRepository) Update(ctx context.Context, record *domain.DeliveryRecord) error {
	return r.rows.put(record, true)
}

func (r *DeliveryRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryRecord, error) {
	return r.rows.get(id)
}

func (r *DeliveryRecordRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.rows.list(opts, nil)
}

func (r *DeliveryRecordRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.rows.softDelete(id)
}

func (r *DeliveryRecordRepository) ListByViewer(ctx context.Context, viewerID string, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.rows.list(opts, func(d *domain.DeliveryRecord) bool { return d.ViewerID == viewerID })
}

func (r *DeliveryRecordRepository) ListByKind(ctx context.Context, kind string, opts store.ListOptions) (store.ListResult[domain.DeliveryRecord], error) {
	return r.rows.list(opts, func(d *domain.DeliveryRecord) bool { return d.Kind == kind })
}
