package service

import (
	"context"
	"encoding/json"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore 会话状态存储，按会话 ID 读写
type SessionStore interface {
	Get(ctx context.Context, id string) (*model.SessionState, error)
	Save(ctx context.Context, id string, state *model.SessionState, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

const redisSessionPrefix = "interview:session:"

// RedisSessionStore 把会话以 JSON 形式存入 Redis，过期由 Redis TTL 控制
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*model.SessionState, error) {
	data, err := s.Client.Get(ctx, redisSessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, id string, state *model.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, redisSessionPrefix+id, data, ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, redisSessionPrefix+id).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore 进程内会话存储，单实例部署和测试使用
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*model.SessionState, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, util.ErrSessionNotFound
	}

	// 返回副本，调用方修改后需要显式 Save
	var state model.SessionState
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, id string, state *model.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[id] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// PurgeExpired 清理过期会话，返回清理数量
func (s *MemorySessionStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, id)
			purged++
		}
	}
	return purged
}
