package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

type fakeStore struct {
	data    map[registry.Domain]registry.DomainData
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[registry.Domain]registry.DomainData)}
}

func (f *fakeStore) Load(_ context.Context, d registry.Domain) (registry.DomainData, error) {
	if f.loadErr != nil {
		return registry.DomainData{}, f.loadErr
	}
	data, ok := f.data[d]
	if !ok {
		return registry.DomainData{}, ErrNotFound
	}
	return data, nil
}

func (f *fakeStore) Save(_ context.Context, d registry.Domain, data registry.DomainData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[d] = data
	return nil
}

func TestMirroredSaveWritesBoth(t *testing.T) {
	primary, backup := newFakeStore(), newFakeStore()
	m := NewMirrored(primary, backup, zap.NewNop())
	data := registry.DomainData{Firms: []registry.Firm{{ID: 1, Name: "ТОВ \"Флоріан Шуз\""}}}

	if err := m.Save(context.Background(), registry.Conclusions, data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(primary.data[registry.Conclusions].Firms) != 1 || len(backup.data[registry.Conclusions].Firms) != 1 {
		t.Fatalf("both stores should hold the data")
	}
}

func TestMirroredBackupFailureDoesNotFailSave(t *testing.T) {
	primary, backup := newFakeStore(), newFakeStore()
	backup.saveErr = errors.New("redis down")
	m := NewMirrored(primary, backup, zap.NewNop())

	if err := m.Save(context.Background(), registry.Conclusions, registry.DomainData{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestMirroredLoadFallsBackToBackup(t *testing.T) {
	primary, backup := newFakeStore(), newFakeStore()
	primary.loadErr = errors.New("database locked")
	backup.data[registry.Certificates] = registry.DomainData{Records: []registry.Record{{ID: 102}}}
	m := NewMirrored(primary, backup, zap.NewNop())

	data, err := m.Load(context.Background(), registry.Certificates)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Records) != 1 || data.Records[0].ID != 102 {
		t.Fatalf("expected backup data, got %+v", data)
	}
}

func TestMirroredLoadReturnsPrimaryErrorWithoutBackup(t *testing.T) {
	primaryErr := errors.New("database locked")
	primary, backup := newFakeStore(), newFakeStore()
	primary.loadErr = primaryErr
	m := NewMirrored(primary, backup, zap.NewNop())

	if _, err := m.Load(context.Background(), registry.Conclusions); !errors.Is(err, primaryErr) {
		t.Fatalf("Load error = %v, want primary error", err)
	}
}
