package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapos/lumapos/internal/platform/store"
	"github.com/lumapos/lumapos/internal/shared"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	st := store.NewWithClient(client)
	return NewService(NewRepository(st), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadReturnsDefaults(t *testing.T) {
	svc := newTestService(t)

	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, EngineSQLite, cfg.Type)
	assert.Equal(t, "sales_db.sqlite", cfg.Database)
	assert.True(t, cfg.Connected)
	assert.Equal(t, ModeDirect, cfg.ConnectionMode)
}

func TestSaveMarksConnectedAndRedacts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, DbConfig{
		Type:           EngineMySQL,
		Host:           "db.internal",
		User:           "shop",
		Password:       "hunter2",
		Database:       "pos",
		ConnectionMode: ModeProxy,
		ProxyURL:       "https://proxy.internal/analyze",
	})
	require.NoError(t, err)

	assert.True(t, saved.Connected)
	assert.Empty(t, saved.Password)

	// GET never echoes the password but it stays in the store.
	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Password)
	assert.Equal(t, "db.internal", loaded.Host)

	routing, err := svc.Routing(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", routing.Password)
	assert.Equal(t, "https://proxy.internal/analyze", routing.ProxyURL)
}

func TestSaveBlankPasswordKeepsStoredOne(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, DbConfig{Type: EngineMySQL, Password: "hunter2", ConnectionMode: ModeDirect})
	require.NoError(t, err)

	_, err = svc.Save(ctx, DbConfig{Type: EngineMySQL, ConnectionMode: ModeDirect})
	require.NoError(t, err)

	routing, err := svc.Routing(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", routing.Password)
}

func TestSaveRejectsUnknownEnums(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, DbConfig{Type: "oracle", ConnectionMode: ModeDirect})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Save(ctx, DbConfig{Type: EngineSQLite, ConnectionMode: "tunnel"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
