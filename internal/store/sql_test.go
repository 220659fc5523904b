package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/db"
	"github.com/Simplici0/tpp-registry/internal/migrations"
	"github.com/Simplici0/tpp-registry/internal/registry"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), db.Options{
		Driver:         db.DriverSQLite,
		DSN:            filepath.Join(t.TempDir(), "store-test.db"),
		ConnectTimeout: time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(context.Background(), database, db.DriverSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestSQLLoadMissingDomainIsEmpty(t *testing.T) {
	s := NewSQL(newTestDB(t), db.DriverSQLite)

	data, err := s.Load(context.Background(), registry.Conclusions)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !data.Empty() {
		t.Fatalf("expected empty data, got %+v", data)
	}
}

func TestSQLSaveAndLoad(t *testing.T) {
	s := NewSQL(newTestDB(t), db.DriverSQLite)
	ctx := context.Background()

	data := registry.DomainData{
		Records: []registry.Record{{ID: 101, RegistrationNumber: "C-101", Pages: 18}},
		GeneralSettings: registry.GeneralSettings{
			Urgency:                      150,
			FullyProducedUpTo20PagesCost: 600,
		},
	}
	if err := s.Save(ctx, registry.Certificates, data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data.Records[0].Pages = 25
	if err := s.Save(ctx, registry.Certificates, data); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := s.Load(ctx, registry.Certificates)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Records) != 1 || loaded.Records[0].Pages != 25 {
		t.Fatalf("unexpected records: %+v", loaded.Records)
	}
	if loaded.GeneralSettings.FullyProducedUpTo20PagesCost != 600 {
		t.Fatalf("settings not persisted: %+v", loaded.GeneralSettings)
	}

	other, err := s.Load(ctx, registry.Conclusions)
	if err != nil {
		t.Fatalf("Load conclusions: %v", err)
	}
	if !other.Empty() {
		t.Fatalf("conclusions should be untouched, got %+v", other)
	}
}
