// Package store holds Store, a marketplace shop orders are imported from,
// and its sync checkpoint.
package store

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Store is a marketplace source. A nil lastSyncTimestamp makes the importer
// re-read the full order history on its next cycle.
type Store struct {
	id                kernel.UUID
	name              string
	platform          string
	lastSyncTimestamp *time.Time
}

func NewStore(id kernel.UUID, name, platform string) (*Store, error) {
	return RestoreStore(id, name, platform, nil)
}

func RestoreStore(id kernel.UUID, name, platform string, lastSync *time.Time) (*Store, error) {
	var nameErr, platformErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if strings.TrimSpace(platform) == "" {
		platformErr = errs.NewValueIsRequiredError("platform")
	}
	if err := errors.Join(id.Validate(), nameErr, platformErr); err != nil {
		return nil, err
	}

	return &Store{id: id, name: name, platform: platform, lastSyncTimestamp: lastSync}, nil
}

func (s *Store) ID() kernel.UUID               { return s.id }
func (s *Store) Name() string                  { return s.name }
func (s *Store) Platform() string              { return s.platform }
func (s *Store) LastSyncTimestamp() *time.Time { return s.lastSyncTimestamp }

// MarkSynced advances the checkpoint.
func (s *Store) MarkSynced(at time.Time) {
	at = at.UTC()
	s.lastSyncTimestamp = &at
}

// ResetCheckpoint forces a full re-import.
func (s *Store) ResetCheckpoint() {
	s.lastSyncTimestamp = nil
}
