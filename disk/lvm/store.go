package lvm

import (
	"context"
	"go.uber.org/zap"
	"sync"
)

// Store keeps the most recent inventory for the presentation layer.
type Store struct {
	client *Client
	log    *zap.SugaredLogger

	mu  sync.RWMutex
	inv *Inventory
}

func NewStore(client *Client) *Store {
	return &Store{client: client, log: client.log}
}

// Current is nil until the first successful Refresh.
func (s *Store) Current() *Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv
}

// Refresh replaces the held inventory with a new one. On error the previous
// inventory stays in place.
func (s *Store) Refresh(ctx context.Context) (*Inventory, error) {
	inv, err := s.client.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := s.inv
	s.inv = inv
	s.mu.Unlock()

	if prev != nil && prev.Fingerprint() == inv.Fingerprint() {
		s.log.Debugf("inventory unchanged (%016x)", inv.Fingerprint())
	}
	return inv, nil
}

// Create runs the create request and refreshes the inventory so the new
// volume shows up. A failed refresh does not turn a successful create into
// an error; the name is returned together with the refresh error.
func (s *Store) Create(ctx context.Context, req VolumeCreateRequest) (string, error) {
	name, err := s.client.CreateVolume(ctx, req)
	if err != nil {
		return "", err
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.log.Warnf("refresh after creating %s/%s: %v", req.VgName, name, err)
		return name, err
	}
	return name, nil
}
