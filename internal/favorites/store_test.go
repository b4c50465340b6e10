package favorites

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorodok/gorodok-api/internal/models"
)

func rel(favouriteID, refID string) models.FavoriteRelation {
	return models.FavoriteRelation{
		FavouriteID: favouriteID,
		RefID:       refID,
		Type:        models.FavoriteTypeListing,
	}
}

func loadedStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store := NewStore(storage, "user:test")
	store.LoadInitial(context.Background())
	return store, storage
}

func TestStoreAddIsIdempotentByRefID(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	store.Add(ctx, rel("fav-1", "shop-1"))
	store.Add(ctx, rel("fav-2", "shop-1")) // тот же объект, другой ID записи

	assert.Equal(t, 1, store.Len())
	id, ok := store.FavouriteID("shop-1")
	require.True(t, ok)
	assert.Equal(t, "fav-1", id)
}

func TestStoreAddGeneratesFavouriteID(t *testing.T) {
	store, _ := loadedStore(t)

	store.Add(context.Background(), rel("", "shop-1"))

	id, ok := store.FavouriteID("shop-1")
	require.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestStoreRemoveByFavouriteID(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	store.Add(ctx, rel("fav-1", "shop-1"))
	store.Add(ctx, rel("fav-2", "shop-2"))

	store.Remove(ctx, "fav-1")

	assert.False(t, store.IsFavorite("shop-1"))
	assert.True(t, store.IsFavorite("shop-2"))
	assert.Equal(t, 1, store.Len())

	// Удаление несуществующей записи — no-op
	store.Remove(ctx, "fav-1")
	assert.Equal(t, 1, store.Len())
}

func TestStoreToggle(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	added := store.Toggle(ctx, rel("fav-1", "shop-1"))
	assert.True(t, added)
	assert.True(t, store.IsFavorite("shop-1"))

	removed := store.Toggle(ctx, rel("", "shop-1"))
	assert.False(t, removed)
	assert.False(t, store.IsFavorite("shop-1"))
	assert.Equal(t, 0, store.Len())
}

func TestStorePreservesInsertionOrder(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	store.Add(ctx, rel("fav-1", "shop-1"))
	store.Add(ctx, rel("fav-2", "shop-2"))
	store.Add(ctx, rel("fav-3", "shop-3"))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "shop-1", items[0].RefID)
	assert.Equal(t, "shop-2", items[1].RefID)
	assert.Equal(t, "shop-3", items[2].RefID)
}

func TestSyncFromServerReplacesLocalSet(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	store.Add(ctx, rel("fav-a", "shop-a"))
	store.Add(ctx, rel("fav-b", "shop-b"))

	// Сервер знает про B и C, но не про A
	seq := store.BeginSync()
	applied := store.SyncFromServer(ctx, seq, []models.FavoriteRelation{
		rel("srv-b", "shop-b"),
		rel("srv-c", "shop-c"),
	})
	require.True(t, applied)

	// Побеждает сервер: локальная запись A потеряна, слияния нет
	assert.False(t, store.IsFavorite("shop-a"))
	assert.True(t, store.IsFavorite("shop-b"))
	assert.True(t, store.IsFavorite("shop-c"))

	id, _ := store.FavouriteID("shop-b")
	assert.Equal(t, "srv-b", id)
}

func TestSyncFromServerDiscardsStaleSnapshot(t *testing.T) {
	store, _ := loadedStore(t)
	ctx := context.Background()

	first := store.BeginSync()
	second := store.BeginSync()

	require.True(t, store.SyncFromServer(ctx, second, []models.FavoriteRelation{rel("srv-1", "shop-1")}))

	// Ответ более ранней синхронизации пришел позже и должен быть отброшен
	applied := store.SyncFromServer(ctx, first, []models.FavoriteRelation{rel("srv-old", "shop-old")})
	assert.False(t, applied)
	assert.True(t, store.IsFavorite("shop-1"))
	assert.False(t, store.IsFavorite("shop-old"))
}

func TestLoadInitialRestoresSnapshot(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	snapshot, err := json.Marshal([]models.FavoriteRelation{rel("fav-1", "shop-1")})
	require.NoError(t, err)
	require.NoError(t, storage.Write(ctx, "user:test", string(snapshot)))

	store := NewStore(storage, "user:test")
	store.LoadInitial(ctx)

	assert.True(t, store.IsFavorite("shop-1"))
	assert.Equal(t, 1, store.Len())
}

func TestLoadInitialCorruptSnapshotGivesEmptySet(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Write(ctx, "user:test", "{не json"))

	store := NewStore(storage, "user:test")
	store.LoadInitial(ctx)

	assert.Equal(t, 0, store.Len())

	// После загрузки набор работает и персистится как обычно
	store.Add(ctx, rel("fav-1", "shop-1"))
	raw, err := storage.Read(ctx, "user:test")
	require.NoError(t, err)
	assert.Contains(t, raw, "shop-1")
}

func TestPersistenceGatedOnLoad(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	snapshot, err := json.Marshal([]models.FavoriteRelation{rel("fav-1", "shop-1")})
	require.NoError(t, err)
	require.NoError(t, storage.Write(ctx, "user:test", string(snapshot)))

	// До LoadInitial изменения не должны затирать сохраненный снимок
	store := NewStore(storage, "user:test")
	store.Add(ctx, rel("fav-2", "shop-2"))

	raw, err := storage.Read(ctx, "user:test")
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), raw)
}

func TestLoadInitialIsIdempotent(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	store := NewStore(storage, "user:test")
	store.LoadInitial(ctx)
	store.Add(ctx, rel("fav-1", "shop-1"))

	// Повторная загрузка не сбрасывает набор
	store.LoadInitial(ctx)
	assert.True(t, store.IsFavorite("shop-1"))
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	manager := NewManager(NewMemoryStorage())
	ctx := context.Background()

	first := manager.Store(ctx, "user:42")
	second := manager.Store(ctx, "user:42")
	other := manager.Store(ctx, "guest:7")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)

	manager.Drop("user:42")
	assert.NotSame(t, first, manager.Store(ctx, "user:42"))
}
