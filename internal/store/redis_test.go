package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	c := newCanvas("app")
	require.NoError(t, s.Create(ctx, c))

	assert.Equal(t, time.Minute, mr.TTL("test:canvas:"+c.ID))

	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_IgnoresForeignKeys(t *testing.T) {
	s, mr := newRedisStore(t, 0)
	ctx := context.Background()
	require.NoError(t, mr.Set("other:key", "value"))

	c := newCanvas("web")
	require.NoError(t, s.Create(ctx, c))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	s, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set("test:canvas:broken", "{not json"))

	_, err := s.Get(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStore_Defaults(t *testing.T) {
	client, _ := redismock.NewClientMock()
	s := NewRedisStore(client, "", -time.Second)
	assert.Equal(t, defaultKeyPrefix, s.prefix)
	assert.Zero(t, s.ttl)
}

func TestRedisStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")

	t.Run("get", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisStore(client, "canvas:", 0)
		mock.ExpectGet("canvas:abc").SetErr(down)

		_, err := s.Get(ctx, "abc")
		assert.ErrorIs(t, err, down)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisStore(client, "canvas:", 0)
		mock.ExpectDel("canvas:abc").SetErr(down)

		assert.ErrorIs(t, s.Delete(ctx, "abc"), down)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisStore(client, "canvas:", 0)
		mock.ExpectDel("canvas:abc").SetVal(0)

		assert.ErrorIs(t, s.Delete(ctx, "abc"), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisStore(client, "canvas:", 0)
		mock.ExpectPing().SetErr(down)

		assert.ErrorIs(t, s.Ping(ctx), down)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		s := NewRedisStore(client, "canvas:", 0)
		mock.ExpectScan(0, "canvas:*", scanBatchSize).SetErr(down)

		_, err := s.List(ctx)
		assert.ErrorIs(t, err, down)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
