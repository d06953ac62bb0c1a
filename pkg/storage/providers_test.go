package storage

import (
	"context"
	"testing"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
)

func TestMemoryProviders(t *testing.T) {
	providers := NewMemoryProviders()
	ctx := context.Background()

	rec := &domain.DeliveryRecord{ViewerID: "viewer-1", Sink: "console", Kind: "message"}
	err := providers.Transaction.WithinTransaction(ctx, func(ctx context.Context) error {
		return providers.DeliveryRecords.Create(ctx, rec)
	})
	if err != nil {
		t.Fatalf("create inside transaction: %v", err)
	}

	got, err := providers.DeliveryRecords.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Status != domain.DeliveryStatusDelivered {
		t.Fatalf("expected default status, got %q", got.Status)
	}

	if _, err := providers.ViewerProfiles.GetByViewerID(ctx, "missing"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown viewer, got %v", err)
	}
}

func TestModelsListsEveryEntity(t *testing.T) {
	models := Models()
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if _, ok := models[0].(*domain.DeliveryRecord); !ok {
		t.Fatalf("expected the delivery record first, got %T", models[0])
	}
	if _, ok := models[1].(*domain.ViewerProfile); !ok {
		t.Fatalf("expected the viewer profile second, got %T", models[1])
	}
}
