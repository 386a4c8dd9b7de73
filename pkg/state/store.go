// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store defines the interface for accessing device profiles.
// This allows for easier testing and different storage implementations.
type Store interface {
	GetProfile(ctx context.Context, deviceID string) (*Profile, error)
	UpdateProfile(ctx context.Context, deviceID string, profile *Profile) error
	DeleteProfile(ctx context.Context, deviceID string) error
}

// MemoryStore keeps profiles in process memory. Profiles are stored as JSON so
// callers never share pointers with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) GetProfile(ctx context.Context, deviceID string) (*Profile, error) {
	m.mu.RLock()
	data, ok := m.data[deviceID]
	m.mu.RUnlock()
	if !ok {
		return NewProfile(), nil
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.normalize()
	return &profile, nil
}

func (m *MemoryStore) UpdateProfile(ctx context.Context, deviceID string, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	m.mu.Lock()
	m.data[deviceID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteProfile(ctx context.Context, deviceID string) error {
	m.mu.Lock()
	delete(m.data, deviceID)
	m.mu.Unlock()
	return nil
}
