package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

// Mirrored writes through to a backup on every save and reads from it when
// the primary store fails. Backup failures never fail a save.
type Mirrored struct {
	primary registry.Store
	backup  registry.Store
	logger  *zap.Logger
}

// NewMirrored composes primary and backup.
func NewMirrored(primary, backup registry.Store, logger *zap.Logger) *Mirrored {
	return &Mirrored{primary: primary, backup: backup, logger: logger}
}

func (m *Mirrored) Load(ctx context.Context, d registry.Domain) (registry.DomainData, error) {
	data, err := m.primary.Load(ctx, d)
	if err == nil {
		return data, nil
	}

	m.logger.Warn("primary store unavailable, loading backup",
		zap.String("domain", string(d)),
		zap.Error(err))
	backup, backupErr := m.backup.Load(ctx, d)
	if backupErr != nil {
		m.logger.Error("backup load failed",
			zap.String("domain", string(d)),
			zap.Error(backupErr))
		return registry.DomainData{}, err
	}
	return backup, nil
}

func (m *Mirrored) Save(ctx context.Context, d registry.Domain, data registry.DomainData) error {
	if err := m.backup.Save(ctx, d, data); err != nil {
		m.logger.Warn("backup save failed",
			zap.String("domain", string(d)),
			zap.Error(err))
	}
	return m.primary.Save(ctx, d, data)
}
