package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
)

const (
	keyDeviceIdentity   = "device:identity"
	keyCurrentHousehold = "household:current"
)

// GetDeviceIdentity retrieves the anonymous remote identity for this device.
// Returns (nil, nil) when the device has never signed in.
func (s *Store) GetDeviceIdentity(ctx context.Context) (*domain.DeviceIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var identity domain.DeviceIdentity
	err := s.get([]byte(keyDeviceIdentity), &identity)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// PutDeviceIdentity stores the anonymous remote identity.
func (s *Store) PutDeviceIdentity(ctx context.Context, identity *domain.DeviceIdentity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyDeviceIdentity), identity)
}

// GetCurrentHousehold retrieves the household this device belongs to.
// Returns uuid.Nil when the user has not created or joined one.
func (s *Store) GetCurrentHousehold(ctx context.Context) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err := s.get([]byte(keyCurrentHousehold), &id)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// PutCurrentHousehold stores the household this device belongs to.
func (s *Store) PutCurrentHousehold(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyCurrentHousehold), id)
}
