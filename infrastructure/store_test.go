package infrastructure

import (
	"context"
	"path/filepath"
	"testing"

	"lotto/config"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_File(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history.json")

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.StoreBackendFile, store.Backend)
	assert.NoError(t, store.Health(context.Background()))

	require.NoError(t, store.Tickets.Append(context.Background(), testutil.CreateTestTicket(1)))
	tickets, err := store.Tickets.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestOpenStore_FileHealthFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.HistoryFile = filepath.Join(t.TempDir(), "missing", "history.json")

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Error(t, store.Health(context.Background()))
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.StoreBackend = "sqlite"

	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenStore_Redis(t *testing.T) {
	t.Parallel()
	testRedis := testutil.SetupTestRedis(t)

	cfg := config.NewTestConfig()
	cfg.StoreBackend = config.StoreBackendRedis
	cfg.RedisAddr = testRedis.Addr
	cfg.RedisKey = "lotto:store-test"

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Health(context.Background()))
	removed, err := store.Tickets.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestOpenStore_Postgres(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	cfg := config.NewTestConfig()
	cfg.StoreBackend = config.StoreBackendPostgres
	cfg.DatabaseURL = testDB.URL

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Health(context.Background()))
	tickets, err := store.Tickets.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}
