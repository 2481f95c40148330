package service

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client), mr
}

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	submitted := loggedInState()
	submitted.SelectedRole = "Backend Engineer"
	submitted.Difficulty = "Advanced"
	submitted.ResumeFile = "Alice_cv.pdf"
	submitted.InterviewResults = []model.InterviewResponse{
		{Question: "Describe your journey as a Backend Engineer.", Answer: "long answer"},
		{Question: "What is your biggest strength?"},
	}
	submitted.Advance(model.StageInterviewSubmitted)

	tests := []struct {
		name  string
		state *model.SessionState
	}{
		{"fresh login", loggedInState()},
		{"submitted interview", submitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := newTestRedisStore(t)

			require.NoError(t, store.Save(ctx, "sid", tt.state, time.Hour))
			assert.True(t, mr.Exists(redisSessionPrefix+"sid"))

			got, err := store.Get(ctx, "sid")
			require.NoError(t, err)
			assert.Equal(t, tt.state, got)
			assert.Equal(t, tt.state.Stage, got.Stage)
		})
	}
}

func TestRedisSessionStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "sid", loggedInState(), 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL(redisSessionPrefix+"sid"))

	// 再次保存刷新过期时间
	mr.FastForward(20 * time.Minute)
	require.NoError(t, store.Save(ctx, "sid", loggedInState(), 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL(redisSessionPrefix+"sid"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(ctx, "sid")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestRedisSessionStore_MissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, err := store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, "sid", loggedInState(), time.Hour))
	require.NoError(t, store.Delete(ctx, "sid"))
	assert.False(t, mr.Exists(redisSessionPrefix+"sid"))

	_, err = store.Get(ctx, "sid")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	// 删除不存在的会话不报错
	assert.NoError(t, store.Delete(ctx, "sid"))
}

func TestRedisSessionStore_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, mr.Set(redisSessionPrefix+"sid", "not json"))
	_, err := store.Get(ctx, "sid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSessionManager_WithRedisStore(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)
	manager := NewSessionManager(store, "test-secret", time.Hour)

	token, err := manager.Start(ctx, loggedInState())
	require.NoError(t, err)

	id, state, err := manager.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", state.UserName)

	state.SelectedRole = "Designer"
	require.NoError(t, manager.Save(ctx, id, state))
	_, reloaded, err := manager.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Designer", reloaded.SelectedRole)

	require.NoError(t, manager.Destroy(ctx, token))
	_, _, err = manager.Load(ctx, token)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
