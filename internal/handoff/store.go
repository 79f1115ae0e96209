package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

var ErrNotFound = errors.New("handoff entry not found")

type Kind string

const (
	KindCalculator Kind = "calculatorData"
	KindRecipient  Kind = "selectedRecipient"
	KindHome       Kind = "homeData"
)

// Store keeps opaque payloads for a limited time.
type Store interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

func Key(sessionID string, kind Kind) string {
	return fmt.Sprintf("handoff:%s:%s", sessionID, kind)
}

// Service passes typed payloads between screens of the same session.
type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

func (s *Service) put(ctx context.Context, sessionID string, kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := s.store.Put(ctx, Key(sessionID, kind), data, s.ttl); err != nil {
		return fmt.Errorf("store %s: %w", kind, err)
	}
	return nil
}

// get decodes the payload into out. Undecodable payloads are logged and
// reported as missing so the caller falls back to its defaults.
func (s *Service) get(ctx context.Context, sessionID string, kind Kind, out any) error {
	data, err := s.store.Get(ctx, Key(sessionID, kind))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).
			Str("session_id", sessionID).
			Str("kind", string(kind)).
			Msg("discarding malformed handoff payload")
		return ErrNotFound
	}
	return nil
}

func (s *Service) SaveCalculator(ctx context.Context, sessionID string, data model.CalculatorData) error {
	return s.put(ctx, sessionID, KindCalculator, data)
}

func (s *Service) LoadCalculator(ctx context.Context, sessionID string) (model.CalculatorData, error) {
	var data model.CalculatorData
	err := s.get(ctx, sessionID, KindCalculator, &data)
	return data, err
}

func (s *Service) SaveRecipient(ctx context.Context, sessionID string, r model.SelectedRecipient) error {
	return s.put(ctx, sessionID, KindRecipient, r)
}

func (s *Service) LoadRecipient(ctx context.Context, sessionID string) (model.SelectedRecipient, error) {
	var r model.SelectedRecipient
	err := s.get(ctx, sessionID, KindRecipient, &r)
	return r, err
}

func (s *Service) SaveHome(ctx context.Context, sessionID string, h model.HomeData) error {
	return s.put(ctx, sessionID, KindHome, h)
}

func (s *Service) LoadHome(ctx context.Context, sessionID string) (model.HomeData, error) {
	var h model.HomeData
	err := s.get(ctx, sessionID, KindHome, &h)
	return h, err
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryStore struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Purge drops expired entries.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}
