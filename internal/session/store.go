package session

import (
	"context"
	"errors"
	"sync"
)

// Keys written by the login flow.
const (
	KeyAccessToken = "access_token"
	KeyClientID    = "client_id"
)

var ErrNotFound = errors.New("session: key not found")

// Store is persistent client-side key-value storage: string keys and values,
// last write wins, no expiry or rotation.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Memory is an in-process Store for tests and single-node development.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}
