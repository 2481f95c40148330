package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"time"

	"github.com/google/uuid"
)

// SessionManager 把会话存储和签名 Cookie 关联起来
type SessionManager struct {
	Store  SessionStore
	Secret string
	TTL    time.Duration
}

func NewSessionManager(store SessionStore, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		Store:  store,
		Secret: secret,
		TTL:    ttl,
	}
}

// Start 创建新会话，返回写入 Cookie 的签名 token
func (m *SessionManager) Start(ctx context.Context, state *model.SessionState) (string, error) {
	id := uuid.New().String()
	if err := m.Store.Save(ctx, id, state, m.TTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	token, err := util.GenerateSessionToken(id, m.Secret, m.TTL)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Load 校验 token 并取出会话状态
func (m *SessionManager) Load(ctx context.Context, token string) (string, *model.SessionState, error) {
	if token == "" {
		return "", nil, util.ErrSessionNotFound
	}

	claims, err := util.ParseSessionToken(token, m.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", util.ErrInvalidSession, err)
	}

	state, err := m.Store.Get(ctx, claims.SessionID)
	if err != nil {
		return "", nil, err
	}
	return claims.SessionID, state, nil
}

func (m *SessionManager) Save(ctx context.Context, id string, state *model.SessionState) error {
	return m.Store.Save(ctx, id, state, m.TTL)
}

func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := util.ParseSessionToken(token, m.Secret)
	if err != nil {
		return nil
	}
	return m.Store.Delete(ctx, claims.SessionID)
}
