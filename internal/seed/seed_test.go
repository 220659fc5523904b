package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/db"
	"github.com/Simplici0/tpp-registry/internal/migrations"
	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/store"
	"github.com/Simplici0/tpp-registry/internal/users"
)

func newTestDeps(t *testing.T) (*users.Repository, *registry.Service) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(context.Background(), db.Options{
		Driver:         db.DriverSQLite,
		DSN:            dbPath,
		ConnectTimeout: time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(context.Background(), database, db.DriverSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return users.NewRepository(database, db.DriverSQLite),
		registry.NewService(store.NewSQL(database, db.DriverSQLite), zap.NewNop())
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	accounts, svc := newTestDeps(t)
	ctx := context.Background()
	cfg := Config{
		AdminLogin:    "admin",
		AdminPassword: "Admin2025!",
		AdminFullName: "Адміністратор",
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, accounts, svc, cfg, zap.NewNop())
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 3 {
				t.Fatalf("expected 3 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	if _, ok, err := accounts.Authenticate(ctx, "admin", "Admin2025!"); err != nil || !ok {
		t.Fatalf("expected admin credentials to match: %v, %v", ok, err)
	}

	conclusions, err := svc.Data(ctx, registry.Conclusions)
	if err != nil {
		t.Fatalf("load conclusions: %v", err)
	}
	if len(conclusions.CostModelTable) != 8 {
		t.Fatalf("expected 8 tariff rows, got %d", len(conclusions.CostModelTable))
	}
	if conclusions.GeneralSettings.ContractualPageCost != 1560 || conclusions.GeneralSettings.ReplacementCost != 0 {
		t.Fatalf("unexpected conclusion settings: %+v", conclusions.GeneralSettings)
	}

	certificates, err := svc.Data(ctx, registry.Certificates)
	if err != nil {
		t.Fatalf("load certificates: %v", err)
	}
	if len(certificates.CostModelTable) != 0 {
		t.Fatalf("certificates have no tier table, got %d rows", len(certificates.CostModelTable))
	}
	if certificates.GeneralSettings.SufficientProcessingAdditionalPosCost != 85 || certificates.GeneralSettings.Urgency != 150 {
		t.Fatalf("unexpected certificate settings: %+v", certificates.GeneralSettings)
	}
}

func TestRunKeepsExistingData(t *testing.T) {
	accounts, svc := newTestDeps(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, registry.Conclusions, func(d *registry.DomainData) error {
		d.AddRecord(registry.Record{RegistrationNumber: "Д-1"})
		return nil
	}); err != nil {
		t.Fatalf("prepare data: %v", err)
	}

	stats, err := Run(ctx, accounts, svc, Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 1 {
		t.Fatalf("expected only certificates to be seeded, got %d inserts", stats.Inserts)
	}

	conclusions, err := svc.Data(ctx, registry.Conclusions)
	if err != nil {
		t.Fatalf("load conclusions: %v", err)
	}
	if len(conclusions.CostModelTable) != 0 || len(conclusions.Records) != 1 {
		t.Fatalf("existing domain must be left alone: %+v", conclusions)
	}
}

func TestLoadTariffsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	content := `
conclusions:
  settings:
    urgency: 50
  tiers:
    - { models: 1, up_to_10: 1000, up_to_20: 1100, up_to_50: 1200, plus_51: 1300 }
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tariffs file: %v", err)
	}

	tariffs, err := LoadTariffs(path)
	if err != nil {
		t.Fatalf("LoadTariffs: %v", err)
	}

	var data registry.DomainData
	tariffs.Apply(registry.Conclusions, &data)
	if data.GeneralSettings.Urgency != 50 || len(data.CostModelTable) != 1 || data.CostModelTable[0].Plus51 != 1300 {
		t.Fatalf("unexpected applied tariffs: %+v", data)
	}
}

func TestLoadTariffsRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("conclusions: [unclosed"), 0o600); err != nil {
		t.Fatalf("write tariffs file: %v", err)
	}
	if _, err := LoadTariffs(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
