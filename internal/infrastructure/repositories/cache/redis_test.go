package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisClient es un mock del cliente Redis
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewStringCmd(ctx, "get", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	cmd := redis.NewIntCmd(ctx, "del")
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(int64(args.Int(0)))
	}
	return cmd
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	cmd := redis.NewStatusCmd(ctx, "ping")
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestRedisCache_Get(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		redisErr    error
		expectValue string
		expectErr   error
	}{
		{
			name:        "hit",
			value:       `{"data":[]}`,
			expectValue: `{"data":[]}`,
		},
		{
			name:      "redis nil maps to key not found",
			redisErr:  redis.Nil,
			expectErr: ErrKeyNotFound,
		},
		{
			name:      "connection error passes through",
			redisErr:  errors.New("connection refused"),
			expectErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockRedisClient)
			client.On("Get", mock.Anything, "crypto_prices_cache").Return(tt.value, tt.redisErr)

			value, err := NewRedisCacheWithClient(client).Get(context.Background(), "crypto_prices_cache")

			switch {
			case tt.redisErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.expectValue, value)
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrKeyNotFound)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestRedisCache_SetHasNoExpiry(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Set", mock.Anything, "slot", "payload", time.Duration(0)).Return(nil)

	err := NewRedisCacheWithClient(client).Set(context.Background(), "slot", "payload")

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRedisCache_SetError(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Set", mock.Anything, "slot", "payload", time.Duration(0)).Return(errors.New("READONLY"))

	err := NewRedisCacheWithClient(client).Set(context.Background(), "slot", "payload")

	assert.EqualError(t, err, "READONLY")
}

func TestRedisCache_DeletePingClose(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Del", mock.Anything, []string{"slot"}).Return(1, nil)
	client.On("Ping", mock.Anything).Return(nil)
	client.On("Close").Return(nil)

	cache := NewRedisCacheWithClient(client)
	ctx := context.Background()

	assert.NoError(t, cache.Delete(ctx, "slot"))
	assert.NoError(t, cache.Ping(ctx))
	assert.NoError(t, cache.Close())
	client.AssertExpectations(t)
}
