// Package store persists registry data as one JSON document per domain.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

// ErrNotFound is returned by backups that hold no copy of a domain.
var ErrNotFound = errors.New("store: domain not found")

// SQL keeps each domain in a row of the app_data table.
type SQL struct {
	db *sqlx.DB
}

// NewSQL creates a SQL store over an open database.
func NewSQL(database *sql.DB, driver string) *SQL {
	return &SQL{db: sqlx.NewDb(database, driver)}
}

// Load returns the stored data of d. A domain that was never saved loads as
// empty data.
func (s *SQL) Load(ctx context.Context, d registry.Domain) (registry.DomainData, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		s.db.Rebind(`SELECT payload FROM app_data WHERE domain = ?`),
		string(d),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return registry.DomainData{}, nil
	}
	if err != nil {
		return registry.DomainData{}, fmt.Errorf("query app_data: %w", err)
	}

	var data registry.DomainData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return registry.DomainData{}, fmt.Errorf("decode %s payload: %w", d, err)
	}
	return data, nil
}

// Save replaces the stored data of d.
func (s *SQL) Save(ctx context.Context, d registry.Domain, data registry.DomainData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", d, err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO app_data (domain, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (domain) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`), string(d), string(payload))
	if err != nil {
		return fmt.Errorf("upsert app_data: %w", err)
	}
	return nil
}
