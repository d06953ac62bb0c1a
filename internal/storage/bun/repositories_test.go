package bunrepo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-audience/pkg/domain"
	"github.com/goliatone/go-audience/pkg/interfaces/store"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.DriverName(), "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	models := []any{
		(*domain.DeliveryRecord)(nil),
		(*domain.ViewerProfile)(nil),
	}
	for _, model := range models {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		if err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDeliveryRecordRepositoryBun(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewDeliveryRecordRepository(db)
	ctx := context.Background()

	rec := &domain.DeliveryRecord{
		ViewerID: "viewer-1",
		Sink:     "journal",
		Kind:     "message",
		Payload:  domain.JSONMap{"text": "hello"},
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Status != domain.DeliveryStatusDelivered {
		t.Fatalf("expected default status delivered, got %s", rec.Status)
	}

	other := &domain.DeliveryRecord{ViewerID: "viewer-2", Sink: "journal", Kind: "sound"}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Payload["text"] != "hello" {
		t.Fatalf("expected payload round trip, got %+v", got.Payload)
	}

	byViewer, err := repo.ListByViewer(ctx, "viewer-1", store.ListOptions{})
	if err != nil {
		t.Fatalf("list by viewer: %v", err)
	}
	if byViewer.Total != 1 || byViewer.Items[0].ViewerID != "viewer-1" {
		t.Fatalf("expected a single record for viewer-1, got %+v", byViewer)
	}

	byKind, err := repo.ListByKind(ctx, "sound", store.ListOptions{})
	if err != nil {
		t.Fatalf("list by kind: %v", err)
	}
	if byKind.Total != 1 || byKind.Items[0].Kind != "sound" {
		t.Fatalf("expected a single sound record, got %+v", byKind)
	}

	if err := repo.SoftDelete(ctx, rec.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, rec.ID); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound after soft delete, got %v", err)
	}
}

func TestViewerProfileRepositoryBun(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewViewerProfileRepository(db)
	ctx := context.Background()

	profile := &domain.ViewerProfile{
		ViewerID:     "viewer-1",
		Name:         "Console One",
		Address:      "one@example.com",
		Locale:       "es",
		Capabilities: domain.StringList{"messages", "sounds"},
		Enabled:      true,
	}
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByViewerID(ctx, "viewer-1")
	if err != nil {
		t.Fatalf("get by viewer id: %v", err)
	}
	if got.Locale != "es" || len(got.Capabilities) != 2 {
		t.Fatalf("expected stored profile back, got %+v", got)
	}

	if _, err := repo.GetByViewerID(ctx, "missing"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown viewer, got %v", err)
	}

	got.Locale = "en"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if updated.Locale != "en" {
		t.Fatalf("expected updated locale en, got %s", updated.Locale)
	}
}
