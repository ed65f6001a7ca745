package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"question-bank/internal/cache"
	"question-bank/internal/domain"
	"question-bank/internal/logger"

	"go.uber.org/zap"
)

// cacheSessionStore implements domain.SessionStore on top of domain.Cache.
// Sessions are stored as JSON snapshots and expire after ttl.
type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore creates a session store backed by c.
func NewSessionStore(c domain.Cache, ttl time.Duration) domain.SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func sessionKey(id string) string {
	return cache.GenerateCacheKey("import", "session", id)
}

func (s *cacheSessionStore) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return domain.NewInternalError("failed to marshal import session", err)
	}
	key := sessionKey(sess.ID())
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store import session", zap.String("key", key), zap.Error(err))
		return domain.NewInternalError(fmt.Sprintf("failed to store import session %s", sess.ID()), err)
	}
	return nil
}

func (s *cacheSessionStore) Load(ctx context.Context, id string) (domain.Session, error) {
	key := sessionKey(id)
	data, err := s.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) {
		return domain.Session{}, domain.NewSessionNotFoundError(id)
	}
	if err != nil {
		logger.Get().Error("Failed to load import session", zap.String("key", key), zap.Error(err))
		return domain.Session{}, domain.NewInternalError(fmt.Sprintf("failed to load import session %s", id), err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return domain.Session{}, domain.NewInternalError(fmt.Sprintf("failed to decode import session %s", id), err)
	}
	return domain.RestoreSession(snap)
}

func (s *cacheSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to delete import session %s", id), err)
	}
	return nil
}
