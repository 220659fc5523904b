package registry

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store persists the data of one domain at a time.
type Store interface {
	Load(ctx context.Context, d Domain) (DomainData, error)
	Save(ctx context.Context, d Domain, data DomainData) error
}

// Service serializes read-modify-write cycles over a Store. It does not
// resolve conflicting edits from other processes; the last save wins.
type Service struct {
	store  Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewService creates a Service backed by store.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Data loads the current data of d.
func (s *Service) Data(ctx context.Context, d Domain) (DomainData, error) {
	data, err := s.store.Load(ctx, d)
	if err != nil {
		return DomainData{}, fmt.Errorf("load %s: %w", d, err)
	}
	data.Normalize()
	return data, nil
}

// Update applies fn to the data of d and saves the result. Nothing is saved
// when fn fails.
func (s *Service) Update(ctx context.Context, d Domain, fn func(*DomainData) error) (DomainData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.Data(ctx, d)
	if err != nil {
		return DomainData{}, err
	}
	if err := fn(&data); err != nil {
		return DomainData{}, err
	}
	data.Normalize()
	if err := s.store.Save(ctx, d, data); err != nil {
		return DomainData{}, fmt.Errorf("save %s: %w", d, err)
	}
	return data, nil
}

// AppData loads both domains.
func (s *Service) AppData(ctx context.Context) (AppData, error) {
	var app AppData
	for _, d := range Domains() {
		data, err := s.Data(ctx, d)
		if err != nil {
			return AppData{}, err
		}
		*app.Domain(d) = data
	}
	return app, nil
}

// ReplaceAppData overwrites both domains.
func (s *Service) ReplaceAppData(ctx context.Context, app AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range Domains() {
		data := *app.Domain(d)
		data.Normalize()
		if err := s.store.Save(ctx, d, data); err != nil {
			return fmt.Errorf("save %s: %w", d, err)
		}
	}
	s.logger.Info("application data replaced",
		zap.Int("conclusions", len(app.Conclusions.Records)),
		zap.Int("certificates", len(app.Certificates.Records)))
	return nil
}

// CopyFirm copies firm id of domain from into the other domain.
func (s *Service) CopyFirm(ctx context.Context, from Domain, id int64) (Firm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.Data(ctx, from)
	if err != nil {
		return Firm{}, err
	}
	firm, err := src.Firm(id)
	if err != nil {
		return Firm{}, err
	}

	to := from.Other()
	dst, err := s.Data(ctx, to)
	if err != nil {
		return Firm{}, err
	}
	copied, err := dst.CopyFirm(firm)
	if err != nil {
		return Firm{}, err
	}
	if err := s.store.Save(ctx, to, dst); err != nil {
		return Firm{}, fmt.Errorf("save %s: %w", to, err)
	}

	s.logger.Info("firm copied",
		zap.String("firm", firm.Name),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return copied, nil
}
