package storage

import (
	"context"
	"database/sql"

	bunrepo "github.com/goliatone/go-audience/internal/storage/bun"
	"github.com/goliatone/go-audience/internal/storage/memory"
	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

// Providers bundles the repositories the sinks and resolvers draw from.
type Providers struct {
	DeliveryRecords store.DeliveryRecordRepository
	ViewerProfiles  store.ViewerProfileRepository
	Transaction     store.TransactionManager
}

// Models lists every persisted entity, in the order tables should be
// created. Hosts use it to drive schema setup.
func Models() []any {
	return []any{
		(*domain.DeliveryRecord)(nil),
		(*domain.ViewerProfile)(nil),
	}
}

// NewMemoryProviders returns repositories backed by in-memory maps,
// suitable for tests and short-lived tooling.
func NewMemoryProviders() Providers {
	return Providers{
		DeliveryRecords: memory.NewDeliveryRecordRepository(),
		ViewerProfiles:  memory.NewViewerProfileRepository(),
		Transaction:     &store.NopTransactionManager{},
	}
}

// NewBunProviders wires Bun-backed repositories over the given database.
// The caller owns the *bun.DB lifecycle; models are registered with
// go-persistence-bun so its migrations can pick them up.
func NewBunProviders(db *bun.DB) Providers {
	if db == nil {
		panic("storage: bun DB is required")
	}

	persistence.RegisterModel(Models()...)

	return Providers{
		DeliveryRecords: bunrepo.NewDeliveryRecordRepository(db),
		ViewerProfiles:  bunrepo.NewViewerProfileRepository(db),
		Transaction:     &bunTxManager{db: db},
	}
}

type bunTxManager struct {
	db *bun.DB
}

func (m *bunTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx)
	})
}
