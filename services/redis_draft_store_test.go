package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaONme/padel-admin/models"
)

func newRedisStore(t *testing.T) (*RedisDraftStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDraftStore(client, 24*time.Hour), mr
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	draft, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRedisStoreSaveAndGet(t *testing.T) {
	store, mr := newRedisStore(t)
	draft := &models.TournamentDraft{
		Name:         "Cup",
		Mode:         models.ModeAmericanoMix,
		ScoringType:  models.ScoringSets,
		SetsLimit:    3,
		Participants: []models.Player{player(1, "Анна"), player(2, "Борис")},
	}
	require.NoError(t, store.Save(context.Background(), 1, draft))

	got, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *draft, *got)

	// черновик живёт под ключом оператора и с ограниченным TTL
	assert.True(t, mr.Exists("padel:draft:1"))
	assert.Equal(t, 24*time.Hour, mr.TTL("padel:draft:1"))
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	require.NoError(t, store.Save(context.Background(), 1, models.NewTournamentDraft()))
	require.NoError(t, store.Delete(context.Background(), 1))

	draft, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRedisStoreIsolatedPerCaller(t *testing.T) {
	store, _ := newRedisStore(t)
	require.NoError(t, store.Save(context.Background(), 1, &models.TournamentDraft{Name: "первый"}))
	require.NoError(t, store.Save(context.Background(), 2, &models.TournamentDraft{Name: "второй"}))

	got, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "первый", got.Name)
}

func TestRedisStoreCorruptedValue(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("padel:draft:1", "не json"))

	_, err := store.Get(context.Background(), 1)
	require.Error(t, err)
}
