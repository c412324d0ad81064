package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"symptom-predictor/internal/domain"
)

// HistoryStore guarda el historial de predicciones de cada sesión.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error
	List(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error)
}

type memorySession struct {
	entries   []domain.HistoryEntry
	expiresAt time.Time
}

type memoryHistoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]*memorySession
}

// NewMemoryHistoryStore guarda el historial en memoria. Cada escritura renueva
// la expiración de la sesión; las sesiones vencidas se descartan al leer o escribir.
func NewMemoryHistoryStore(ttl time.Duration) HistoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryHistoryStore{
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
		items: make(map[string]*memorySession),
	}
}

func (s *memoryHistoryStore) Append(_ context.Context, sessionID string, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	now := s.now()
	s.pruneLocked(now)

	sess, ok := s.items[sessionID]
	if !ok {
		sess = &memorySession{}
		s.items[sessionID] = sess
	}
	sess.entries = append(sess.entries, entry)
	sess.expiresAt = now.Add(s.ttl)
	return nil
}

func (s *memoryHistoryStore) List(_ context.Context, sessionID string) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[sessionID]
	if !ok {
		return []domain.HistoryEntry{}, nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.items, sessionID)
		return []domain.HistoryEntry{}, nil
	}
	out := make([]domain.HistoryEntry, len(sess.entries))
	copy(out, sess.entries)
	return out, nil
}

func (s *memoryHistoryStore) pruneLocked(now time.Time) {
	for id, sess := range s.items {
		if now.After(sess.expiresAt) {
			delete(s.items, id)
		}
	}
}

type redisListClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

type redisHistoryStore struct {
	client redisListClient
	ttl    time.Duration
	prefix string
}

// NewRedisHistoryStore guarda cada historial como una lista que expira con la sesión.
func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) HistoryStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisHistoryStore{
		client: client,
		ttl:    ttl,
		prefix: "session:history:",
	}
}

func (s *redisHistoryStore) Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := s.prefix + sessionID
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *redisHistoryStore) List(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error) {
	if strings.TrimSpace(sessionID) == "" {
		return []domain.HistoryEntry{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := s.client.LRange(ctx, s.prefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
