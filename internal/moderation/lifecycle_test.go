package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorodok/gorodok-api/internal/models"
)

// stubBackend — хранилище в памяти для тестов. failUpdates имитирует отказ
// базы на фазе записи.
type stubBackend struct {
	shops       []models.Shop
	ads         []models.Advertisement
	failUpdates bool
}

var errBackendDown = errors.New("хранилище недоступно")

func (b *stubBackend) ListShops(context.Context) ([]models.Shop, error) { return b.shops, nil }
func (b *stubBackend) ListAds(context.Context) ([]models.Advertisement, error) {
	return b.ads, nil
}

func (b *stubBackend) CreateShop(_ context.Context, shop models.Shop) error {
	if b.failUpdates {
		return errBackendDown
	}
	b.shops = append(b.shops, shop)
	return nil
}

func (b *stubBackend) UpdateShop(_ context.Context, shop models.Shop) error {
	if b.failUpdates {
		return errBackendDown
	}
	for i := range b.shops {
		if b.shops[i].ID == shop.ID {
			b.shops[i] = shop
		}
	}
	return nil
}

func (b *stubBackend) DeleteShop(_ context.Context, id uuid.UUID) error {
	if b.failUpdates {
		return errBackendDown
	}
	for i := range b.shops {
		if b.shops[i].ID == id {
			b.shops = append(b.shops[:i], b.shops[i+1:]...)
			return nil
		}
	}
	return nil
}

func (b *stubBackend) CreateAd(_ context.Context, ad models.Advertisement) error {
	if b.failUpdates {
		return errBackendDown
	}
	b.ads = append(b.ads, ad)
	return nil
}

func (b *stubBackend) UpdateAd(_ context.Context, ad models.Advertisement) error {
	if b.failUpdates {
		return errBackendDown
	}
	for i := range b.ads {
		if b.ads[i].ID == ad.ID {
			b.ads[i] = ad
		}
	}
	return nil
}

func (b *stubBackend) DeleteAd(_ context.Context, id uuid.UUID) error {
	if b.failUpdates {
		return errBackendDown
	}
	for i := range b.ads {
		if b.ads[i].ID == id {
			b.ads = append(b.ads[:i], b.ads[i+1:]...)
			return nil
		}
	}
	return nil
}

// recordingNotifier накапливает события модерации
type recordingNotifier struct {
	events []Event
}

func (n *recordingNotifier) Notify(event Event) {
	n.events = append(n.events, event)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestLifecycle(t *testing.T, opts ...Option) (*Lifecycle, *stubBackend) {
	t.Helper()
	backend := &stubBackend{}
	opts = append([]Option{WithClock(fixedClock(testNow))}, opts...)
	return NewLifecycle(backend, opts...), backend
}

func TestAddShopForcesPendingStatus(t *testing.T) {
	lc, backend := newTestLifecycle(t)
	ctx := context.Background()

	approvedAt := testNow.Add(-time.Hour)
	shop, err := lc.AddShop(ctx, models.Shop{
		Name:         "Чайная на углу",
		Status:       models.ShopStatusApproved, // переданный статус игнорируется
		ApprovedDate: &approvedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ShopStatusPending, shop.Status)
	assert.Nil(t, shop.ApprovedDate)
	assert.NotEqual(t, uuid.Nil, shop.ID)
	assert.Equal(t, testNow, shop.SubmittedDate)
	require.Len(t, backend.shops, 1)
	assert.Equal(t, models.ShopStatusPending, backend.shops[0].Status)
}

func TestApproveShopSetsApprovedDateOnce(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Лавка специй"})
	require.NoError(t, err)

	require.NoError(t, lc.ApproveShop(ctx, shop.ID))

	got, ok := lc.ShopByID(shop.ID)
	require.True(t, ok)
	assert.Equal(t, models.ShopStatusApproved, got.Status)
	require.NotNil(t, got.ApprovedDate)
	assert.Equal(t, testNow, *got.ApprovedDate)

	// Повторный цикл модерации не перезаписывает дату первого одобрения
	require.NoError(t, lc.ResetShopToPending(ctx, shop.ID))
	require.NoError(t, lc.ApproveShop(ctx, shop.ID))

	got, _ = lc.ShopByID(shop.ID)
	assert.Equal(t, testNow, *got.ApprovedDate)
}

func TestApproveShopOnlyFromPending(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Сувениры"})
	require.NoError(t, err)
	require.NoError(t, lc.RejectShop(ctx, shop.ID))

	// Отклоненное заведение нельзя одобрить напрямую
	require.NoError(t, lc.ApproveShop(ctx, shop.ID))
	got, _ := lc.ShopByID(shop.ID)
	assert.Equal(t, models.ShopStatusRejected, got.Status)

	// Путь обратно лежит через возврат на модерацию
	require.NoError(t, lc.ResetShopToPending(ctx, shop.ID))
	require.NoError(t, lc.ApproveShop(ctx, shop.ID))
	got, _ = lc.ShopByID(shop.ID)
	assert.Equal(t, models.ShopStatusApproved, got.Status)
}

func TestEditShopShallowMerge(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{
		Name:        "Пекарня",
		Description: "Свежий хлеб",
		Address:     "ул. Речная, 3",
	})
	require.NoError(t, err)

	newAddress := "ул. Речная, 5"
	require.NoError(t, lc.EditShop(ctx, shop.ID, models.ShopPatch{Address: &newAddress}))

	got, ok := lc.ShopByID(shop.ID)
	require.True(t, ok)
	assert.Equal(t, "ул. Речная, 5", got.Address)
	// Незатронутые поля сохраняются
	assert.Equal(t, "Пекарня", got.Name)
	assert.Equal(t, "Свежий хлеб", got.Description)
	assert.Equal(t, shop.ID, got.ID)
	assert.Equal(t, shop.SubmittedDate, got.SubmittedDate)
}

func TestUnknownIDIsSilentNoop(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	_, err := lc.AddShop(ctx, models.Shop{Name: "Киоск"})
	require.NoError(t, err)

	unknown := uuid.New()
	assert.NoError(t, lc.ApproveShop(ctx, unknown))
	assert.NoError(t, lc.DeleteShop(ctx, unknown))
	assert.NoError(t, lc.RejectAd(ctx, unknown))
	assert.NoError(t, lc.DeleteAd(ctx, unknown))

	stats := lc.Stats()
	assert.Equal(t, 1, stats.TotalShops)
}

func TestBackendFailureLeavesMirrorUntouched(t *testing.T) {
	lc, backend := newTestLifecycle(t)
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Ателье"})
	require.NoError(t, err)

	backend.failUpdates = true
	err = lc.ApproveShop(ctx, shop.ID)
	require.Error(t, err)

	got, _ := lc.ShopByID(shop.ID)
	assert.Equal(t, models.ShopStatusPending, got.Status)
}

func TestApproveAdComputesCalendarExpiry(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{
		Title:    "Велосипед",
		Duration: models.AdDuration1Week,
	})
	require.NoError(t, err)
	assert.Nil(t, ad.ExpiryDate)

	require.NoError(t, lc.ApproveAd(ctx, ad.ID))

	got, ok := lc.AdByID(ad.ID)
	require.True(t, ok)
	assert.Equal(t, models.AdStatusApproved, got.Status)
	require.NotNil(t, got.ApprovedDate)
	assert.Equal(t, testNow, *got.ApprovedDate)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, testNow.AddDate(0, 0, 7), *got.ExpiryDate)
}

func TestApproveAdWithoutDurationLeavesNoExpiry(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{Title: "Отдам котят"})
	require.NoError(t, err)
	require.NoError(t, lc.ApproveAd(ctx, ad.ID))

	got, _ := lc.AdByID(ad.ID)
	assert.Equal(t, models.AdStatusApproved, got.Status)
	assert.Nil(t, got.ExpiryDate)
}

func TestAddAdClearsUnknownDuration(t *testing.T) {
	lc, _ := newTestLifecycle(t)

	ad, err := lc.AddAd(context.Background(), models.Advertisement{
		Title:    "Гараж",
		Duration: models.AdDuration("2weeks"),
	})
	require.NoError(t, err)
	assert.Empty(t, ad.Duration)
}

func TestApproveAdWithPricePersistsPrice(t *testing.T) {
	lc, backend := newTestLifecycle(t)
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{Title: "Мопед", Price: "договорная"})
	require.NoError(t, err)

	require.NoError(t, lc.ApproveAdWithPrice(ctx, ad.ID, "15000"))

	got, _ := lc.AdByID(ad.ID)
	assert.Equal(t, models.AdStatusApproved, got.Status)
	assert.Equal(t, "15000", got.Price)
	require.Len(t, backend.ads, 1)
	assert.Equal(t, "15000", backend.ads[0].Price)
}

func TestMarkAdPaidRecomputesExpiryFromNow(t *testing.T) {
	paymentTime := testNow.Add(48 * time.Hour)
	current := testNow
	backend := &stubBackend{}
	lc := NewLifecycle(backend, WithClock(func() time.Time { return current }))
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{Title: "Шкаф", Duration: models.AdDuration1Month})
	require.NoError(t, err)
	require.NoError(t, lc.ApproveAd(ctx, ad.ID))

	// Оплата подтверждена спустя двое суток после одобрения
	current = paymentTime
	require.NoError(t, lc.MarkAdPaid(ctx, ad.ID))

	got, _ := lc.AdByID(ad.ID)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, paymentTime.AddDate(0, 1, 0), *got.ExpiryDate)
}

func TestMarkAdPaidWithoutDurationIsNoop(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{Title: "Стол"})
	require.NoError(t, err)
	require.NoError(t, lc.MarkAdPaid(ctx, ad.ID))

	got, _ := lc.AdByID(ad.ID)
	assert.Nil(t, got.ExpiryDate)
}

func TestMarkAdLiveRequiresApproved(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	ad, err := lc.AddAd(ctx, models.Advertisement{Title: "Дрова"})
	require.NoError(t, err)

	// Из pending в показ напрямую нельзя
	require.NoError(t, lc.MarkAdLive(ctx, ad.ID))
	got, _ := lc.AdByID(ad.ID)
	assert.Equal(t, models.AdStatusPending, got.Status)

	require.NoError(t, lc.ApproveAd(ctx, ad.ID))
	require.NoError(t, lc.MarkAdLive(ctx, ad.ID))
	got, _ = lc.AdByID(ad.ID)
	assert.Equal(t, models.AdStatusLive, got.Status)
}

func TestExpireDueAds(t *testing.T) {
	current := testNow
	backend := &stubBackend{}
	lc := NewLifecycle(backend, WithClock(func() time.Time { return current }))
	ctx := context.Background()

	short, err := lc.AddAd(ctx, models.Advertisement{Title: "Короткое", Duration: models.AdDuration1Day})
	require.NoError(t, err)
	long, err := lc.AddAd(ctx, models.Advertisement{Title: "Длинное", Duration: models.AdDuration1Month})
	require.NoError(t, err)
	require.NoError(t, lc.ApproveAd(ctx, short.ID))
	require.NoError(t, lc.ApproveAd(ctx, long.ID))

	current = testNow.AddDate(0, 0, 2)
	expired, err := lc.ExpireDueAds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	gotShort, _ := lc.AdByID(short.ID)
	gotLong, _ := lc.AdByID(long.ID)
	assert.Equal(t, models.AdStatusExpired, gotShort.Status)
	assert.Equal(t, models.AdStatusApproved, gotLong.Status)
}

func TestStatsTrackModerationScenario(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Книжный"})
	require.NoError(t, err)
	_, err = lc.AddAd(ctx, models.Advertisement{Title: "Самокат"})
	require.NoError(t, err)

	stats := lc.Stats()
	assert.Equal(t, Stats{TotalShops: 1, PendingShops: 1, TotalAds: 1, PendingAds: 1}, stats)

	require.NoError(t, lc.ApproveShop(ctx, shop.ID))

	stats = lc.Stats()
	assert.Equal(t, Stats{TotalShops: 1, PendingShops: 0, TotalAds: 1, PendingAds: 1}, stats)
}

func TestNotifierReceivesCommittedEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	backend := &stubBackend{}
	lc := NewLifecycle(backend, WithClock(fixedClock(testNow)), WithNotifier(notifier))
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Аптека"})
	require.NoError(t, err)
	require.NoError(t, lc.ApproveShop(ctx, shop.ID))

	require.Len(t, notifier.events, 2)
	assert.Equal(t, EventSubmissionCreated, notifier.events[0].Type)
	assert.Equal(t, EventStatusChanged, notifier.events[1].Type)
	assert.Equal(t, string(models.ShopStatusApproved), notifier.events[1].Status)
}

func TestNotifierSilentOnBackendFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	backend := &stubBackend{}
	lc := NewLifecycle(backend, WithClock(fixedClock(testNow)), WithNotifier(notifier))
	ctx := context.Background()

	shop, err := lc.AddShop(ctx, models.Shop{Name: "Зоомагазин"})
	require.NoError(t, err)

	before := len(notifier.events)
	backend.failUpdates = true
	require.Error(t, lc.ApproveShop(ctx, shop.ID))
	assert.Len(t, notifier.events, before)
}

func TestLoadFillsMirrors(t *testing.T) {
	existing := models.Shop{ID: uuid.New(), Name: "Старый каталог", Status: models.ShopStatusApproved}
	backend := &stubBackend{shops: []models.Shop{existing}}
	lc := NewLifecycle(backend)

	require.NoError(t, lc.Load(context.Background()))

	got, ok := lc.ShopByID(existing.ID)
	require.True(t, ok)
	assert.Equal(t, "Старый каталог", got.Name)
}
