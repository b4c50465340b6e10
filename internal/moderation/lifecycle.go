package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gorodok/gorodok-api/internal/models"
)

// Backend определяет удаленное хранилище записей модерации.
// Lifecycle держит в памяти зеркало коллекций и фиксирует каждое изменение
// двухфазно: сначала вызов Backend, при успехе — коммит в зеркало. При ошибке
// зеркало не меняется, ошибка возвращается вызывающему.
type Backend interface {
	ListShops(ctx context.Context) ([]models.Shop, error)
	ListAds(ctx context.Context) ([]models.Advertisement, error)
	CreateShop(ctx context.Context, shop models.Shop) error
	UpdateShop(ctx context.Context, shop models.Shop) error
	DeleteShop(ctx context.Context, id uuid.UUID) error
	CreateAd(ctx context.Context, ad models.Advertisement) error
	UpdateAd(ctx context.Context, ad models.Advertisement) error
	DeleteAd(ctx context.Context, id uuid.UUID) error
}

// EventType определяет тип события модерации
type EventType string

const (
	EventSubmissionCreated EventType = "submission_created"
	EventStatusChanged     EventType = "status_changed"
	EventEntityUpdated     EventType = "entity_updated"
	EventEntityDeleted     EventType = "entity_deleted"
)

// Event описывает зафиксированное изменение для консоли администратора
type Event struct {
	Type   EventType `json:"type"`
	Entity string    `json:"entity"`
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status,omitempty"`
}

// Notifier получает события после успешного коммита изменения
type Notifier interface {
	Notify(event Event)
}

// Stats — живая проекция по текущим коллекциям, без кеширования
type Stats struct {
	TotalShops   int `json:"total_shops"`
	PendingShops int `json:"pending_shops"`
	TotalAds     int `json:"total_ads"`
	PendingAds   int `json:"pending_ads"`
}

// Option настраивает Lifecycle при создании
type Option func(*Lifecycle)

// WithNotifier подключает получателя событий модерации
func WithNotifier(n Notifier) Option {
	return func(l *Lifecycle) { l.notifier = n }
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) { l.now = now }
}

// Lifecycle управляет статусами заведений и объявлений от имени администратора.
// Операции над несуществующим идентификатором — тихие no-op: коллекция не
// меняется, ошибки нет.
type Lifecycle struct {
	mu       sync.Mutex
	backend  Backend
	notifier Notifier
	now      func() time.Time

	shops []models.Shop
	ads   []models.Advertisement
}

// NewLifecycle создает Lifecycle поверх хранилища записей
func NewLifecycle(backend Backend, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load заполняет зеркала коллекций из хранилища
func (l *Lifecycle) Load(ctx context.Context) error {
	shops, err := l.backend.ListShops(ctx)
	if err != nil {
		return fmt.Errorf("загрузка заведений: %w", err)
	}
	ads, err := l.backend.ListAds(ctx)
	if err != nil {
		return fmt.Errorf("загрузка объявлений: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.shops = shops
	l.ads = ads
	return nil
}

// AddShop создает заведение. Идентификатор и дата подачи выдаются здесь,
// статус принудительно pending независимо от переданного.
func (l *Lifecycle) AddShop(ctx context.Context, shop models.Shop) (models.Shop, error) {
	shop.ID = uuid.New()
	shop.SubmittedDate = l.now()
	shop.Status = models.ShopStatusPending
	shop.ApprovedDate = nil

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.backend.CreateShop(ctx, shop); err != nil {
		return models.Shop{}, fmt.Errorf("сохранение заведения: %w", err)
	}
	l.shops = append(l.shops, shop)
	l.notify(Event{Type: EventSubmissionCreated, Entity: "shop", ID: shop.ID, Status: string(shop.Status)})
	return shop, nil
}

// EditShop накладывает частичное обновление на заведение.
// ID и дата подачи не затрагиваются; неизвестный идентификатор — no-op.
func (l *Lifecycle) EditShop(ctx context.Context, id uuid.UUID, patch models.ShopPatch) error {
	return l.updateShop(ctx, id, EventEntityUpdated, func(shop models.Shop) (models.Shop, bool) {
		return patch.Apply(shop), true
	})
}

// DeleteShop безвозвратно удаляет заведение; неизвестный идентификатор — no-op
func (l *Lifecycle) DeleteShop(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, shop := range l.shops {
		if shop.ID == id {
			if err := l.backend.DeleteShop(ctx, id); err != nil {
				return fmt.Errorf("удаление заведения: %w", err)
			}
			l.shops = append(l.shops[:i], l.shops[i+1:]...)
			l.notify(Event{Type: EventEntityDeleted, Entity: "shop", ID: id})
			return nil
		}
	}
	return nil
}

// ApproveShop одобряет заведение, ожидающее модерации. Дата одобрения
// выставляется один раз, при первом переходе в approved. Заведение не в
// статусе pending не затрагивается: выход из approved/rejected возможен
// только через ResetShopToPending.
func (l *Lifecycle) ApproveShop(ctx context.Context, id uuid.UUID) error {
	return l.updateShop(ctx, id, EventStatusChanged, func(shop models.Shop) (models.Shop, bool) {
		if shop.Status != models.ShopStatusPending {
			return shop, false
		}
		shop.Status = models.ShopStatusApproved
		if shop.ApprovedDate == nil {
			t := l.now()
			shop.ApprovedDate = &t
		}
		return shop, true
	})
}

// RejectShop отклоняет заведение, ожидающее модерации
func (l *Lifecycle) RejectShop(ctx context.Context, id uuid.UUID) error {
	return l.updateShop(ctx, id, EventStatusChanged, func(shop models.Shop) (models.Shop, bool) {
		if shop.Status != models.ShopStatusPending {
			return shop, false
		}
		shop.Status = models.ShopStatusRejected
		return shop, true
	})
}

// ResetShopToPending возвращает заведение на модерацию.
// Единственный способ покинуть approved/rejected.
func (l *Lifecycle) ResetShopToPending(ctx context.Context, id uuid.UUID) error {
	return l.updateShop(ctx, id, EventStatusChanged, func(shop models.Shop) (models.Shop, bool) {
		if shop.Status == models.ShopStatusPending {
			return shop, false
		}
		shop.Status = models.ShopStatusPending
		return shop, true
	})
}

// SetShopFeatured выставляет флаг featured вне машины статусов
func (l *Lifecycle) SetShopFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return l.updateShop(ctx, id, EventEntityUpdated, func(shop models.Shop) (models.Shop, bool) {
		shop.Featured = featured
		return shop, true
	})
}

// SetShopSponsored выставляет флаг sponsored вне машины статусов
func (l *Lifecycle) SetShopSponsored(ctx context.Context, id uuid.UUID, sponsored bool) error {
	return l.updateShop(ctx, id, EventEntityUpdated, func(shop models.Shop) (models.Shop, bool) {
		shop.Sponsored = sponsored
		return shop, true
	})
}

// AddAd создает объявление. Идентификатор и дата подачи выдаются здесь,
// статус принудительно pending; неизвестный срок размещения сбрасывается.
func (l *Lifecycle) AddAd(ctx context.Context, ad models.Advertisement) (models.Advertisement, error) {
	ad.ID = uuid.New()
	ad.SubmittedDate = l.now()
	ad.Status = models.AdStatusPending
	ad.ApprovedDate = nil
	ad.ExpiryDate = nil
	if ad.Duration != "" && !ValidDuration(ad.Duration) {
		ad.Duration = ""
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.backend.CreateAd(ctx, ad); err != nil {
		return models.Advertisement{}, fmt.Errorf("сохранение объявления: %w", err)
	}
	l.ads = append(l.ads, ad)
	l.notify(Event{Type: EventSubmissionCreated, Entity: "advertisement", ID: ad.ID, Status: string(ad.Status)})
	return ad, nil
}

// EditAd накладывает частичное обновление на объявление.
// ID и дата подачи не затрагиваются; неизвестный идентификатор — no-op.
func (l *Lifecycle) EditAd(ctx context.Context, id uuid.UUID, patch models.AdvertisementPatch) error {
	return l.updateAd(ctx, id, EventEntityUpdated, func(ad models.Advertisement) (models.Advertisement, bool) {
		return patch.Apply(ad), true
	})
}

// DeleteAd безвозвратно удаляет объявление; неизвестный идентификатор — no-op
func (l *Lifecycle) DeleteAd(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, ad := range l.ads {
		if ad.ID == id {
			if err := l.backend.DeleteAd(ctx, id); err != nil {
				return fmt.Errorf("удаление объявления: %w", err)
			}
			l.ads = append(l.ads[:i], l.ads[i+1:]...)
			l.notify(Event{Type: EventEntityDeleted, Entity: "advertisement", ID: id})
			return nil
		}
	}
	return nil
}

// ApproveAd одобряет объявление, ожидающее модерации. Дата одобрения
// выставляется один раз; если при подаче выбран срок размещения, дата
// окончания вычисляется календарно от момента одобрения.
func (l *Lifecycle) ApproveAd(ctx context.Context, id uuid.UUID) error {
	return l.updateAd(ctx, id, EventStatusChanged, l.approveAdFn(nil))
}

// ApproveAdWithPrice одобряет объявление и фиксирует согласованную цену
func (l *Lifecycle) ApproveAdWithPrice(ctx context.Context, id uuid.UUID, price string) error {
	return l.updateAd(ctx, id, EventStatusChanged, l.approveAdFn(&price))
}

func (l *Lifecycle) approveAdFn(price *string) func(models.Advertisement) (models.Advertisement, bool) {
	return func(ad models.Advertisement) (models.Advertisement, bool) {
		if ad.Status != models.AdStatusPending {
			return ad, false
		}
		ad.Status = models.AdStatusApproved
		now := l.now()
		if ad.ApprovedDate == nil {
			ad.ApprovedDate = &now
		}
		if expiry, ok := ExpiryFrom(now, ad.Duration); ok {
			ad.ExpiryDate = &expiry
		}
		if price != nil {
			ad.Price = *price
		}
		return ad, true
	}
}

// RejectAd отклоняет объявление, ожидающее модерации
func (l *Lifecycle) RejectAd(ctx context.Context, id uuid.UUID) error {
	return l.updateAd(ctx, id, EventStatusChanged, func(ad models.Advertisement) (models.Advertisement, bool) {
		if ad.Status != models.AdStatusPending {
			return ad, false
		}
		ad.Status = models.AdStatusRejected
		return ad, true
	})
}

// ResetAdToPending возвращает объявление на модерацию
func (l *Lifecycle) ResetAdToPending(ctx context.Context, id uuid.UUID) error {
	return l.updateAd(ctx, id, EventStatusChanged, func(ad models.Advertisement) (models.Advertisement, bool) {
		if ad.Status == models.AdStatusPending {
			return ad, false
		}
		ad.Status = models.AdStatusPending
		return ad, true
	})
}

// MarkAdPaid пересчитывает дату окончания размещения от текущего момента по
// сохраненному сроку. Используется, когда подтверждение оплаты отделено от
// одобрения. Без выбранного срока — no-op.
func (l *Lifecycle) MarkAdPaid(ctx context.Context, id uuid.UUID) error {
	return l.updateAd(ctx, id, EventEntityUpdated, func(ad models.Advertisement) (models.Advertisement, bool) {
		expiry, ok := ExpiryFrom(l.now(), ad.Duration)
		if !ok {
			return ad, false
		}
		ad.ExpiryDate = &expiry
		return ad, true
	})
}

// MarkAdLive переводит одобренное объявление в показ
func (l *Lifecycle) MarkAdLive(ctx context.Context, id uuid.UUID) error {
	return l.updateAd(ctx, id, EventStatusChanged, func(ad models.Advertisement) (models.Advertisement, bool) {
		if ad.Status != models.AdStatusApproved {
			return ad, false
		}
		ad.Status = models.AdStatusLive
		return ad, true
	})
}

// SetAdFeatured выставляет флаг featured вне машины статусов
func (l *Lifecycle) SetAdFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return l.updateAd(ctx, id, EventEntityUpdated, func(ad models.Advertisement) (models.Advertisement, bool) {
		ad.Featured = featured
		return ad, true
	})
}

// SetAdSponsored выставляет флаг sponsored вне машины статусов
func (l *Lifecycle) SetAdSponsored(ctx context.Context, id uuid.UUID, sponsored bool) error {
	return l.updateAd(ctx, id, EventEntityUpdated, func(ad models.Advertisement) (models.Advertisement, bool) {
		ad.Sponsored = sponsored
		return ad, true
	})
}

// ExpireDueAds переводит объявления с истекшей датой окончания в expired.
// Возвращает количество затронутых объявлений.
func (l *Lifecycle) ExpireDueAds(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	expired := 0
	for i, ad := range l.ads {
		if ad.ExpiryDate == nil || now.Before(*ad.ExpiryDate) {
			continue
		}
		if ad.Status != models.AdStatusApproved && ad.Status != models.AdStatusLive {
			continue
		}
		updated := ad
		updated.Status = models.AdStatusExpired
		if err := l.backend.UpdateAd(ctx, updated); err != nil {
			return expired, fmt.Errorf("обновление объявления: %w", err)
		}
		l.ads[i] = updated
		expired++
		l.notify(Event{Type: EventStatusChanged, Entity: "advertisement", ID: ad.ID, Status: string(updated.Status)})
	}
	return expired, nil
}

// Shops возвращает копию коллекции заведений в порядке добавления
func (l *Lifecycle) Shops() []models.Shop {
	l.mu.Lock()
	defer l.mu.Unlock()
	shops := make([]models.Shop, len(l.shops))
	copy(shops, l.shops)
	return shops
}

// Ads возвращает копию коллекции объявлений в порядке добавления
func (l *Lifecycle) Ads() []models.Advertisement {
	l.mu.Lock()
	defer l.mu.Unlock()
	ads := make([]models.Advertisement, len(l.ads))
	copy(ads, l.ads)
	return ads
}

// ShopByID возвращает копию заведения
func (l *Lifecycle) ShopByID(id uuid.UUID) (models.Shop, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, shop := range l.shops {
		if shop.ID == id {
			return shop, true
		}
	}
	return models.Shop{}, false
}

// AdByID возвращает копию объявления
func (l *Lifecycle) AdByID(id uuid.UUID) (models.Advertisement, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ad := range l.ads {
		if ad.ID == id {
			return ad, true
		}
	}
	return models.Advertisement{}, false
}

// PendingShops возвращает заведения, ожидающие модерации
func (l *Lifecycle) PendingShops() []models.Shop {
	l.mu.Lock()
	defer l.mu.Unlock()
	var pending []models.Shop
	for _, shop := range l.shops {
		if shop.Status == models.ShopStatusPending {
			pending = append(pending, shop)
		}
	}
	return pending
}

// PendingAds возвращает объявления, ожидающие модерации
func (l *Lifecycle) PendingAds() []models.Advertisement {
	l.mu.Lock()
	defer l.mu.Unlock()
	var pending []models.Advertisement
	for _, ad := range l.ads {
		if ad.Status == models.AdStatusPending {
			pending = append(pending, ad)
		}
	}
	return pending
}

// Stats вычисляет счетчики по текущему состоянию коллекций
func (l *Lifecycle) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Stats{
		TotalShops: len(l.shops),
		TotalAds:   len(l.ads),
	}
	for _, shop := range l.shops {
		if shop.Status == models.ShopStatusPending {
			stats.PendingShops++
		}
	}
	for _, ad := range l.ads {
		if ad.Status == models.AdStatusPending {
			stats.PendingAds++
		}
	}
	return stats
}

// updateShop находит заведение, строит обновленную копию и фиксирует ее
// двухфазно. Неизвестный идентификатор и отклоненный переход — тихие no-op.
func (l *Lifecycle) updateShop(ctx context.Context, id uuid.UUID, eventType EventType, fn func(models.Shop) (models.Shop, bool)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, shop := range l.shops {
		if shop.ID != id {
			continue
		}
		updated, ok := fn(shop)
		if !ok {
			return nil
		}
		// ID и дата подачи неизменяемы
		updated.ID = shop.ID
		updated.SubmittedDate = shop.SubmittedDate
		if err := l.backend.UpdateShop(ctx, updated); err != nil {
			return fmt.Errorf("обновление заведения: %w", err)
		}
		l.shops[i] = updated
		l.notify(Event{Type: eventType, Entity: "shop", ID: id, Status: string(updated.Status)})
		return nil
	}
	return nil
}

// updateAd — то же, что updateShop, для объявлений
func (l *Lifecycle) updateAd(ctx context.Context, id uuid.UUID, eventType EventType, fn func(models.Advertisement) (models.Advertisement, bool)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, ad := range l.ads {
		if ad.ID != id {
			continue
		}
		updated, ok := fn(ad)
		if !ok {
			return nil
		}
		updated.ID = ad.ID
		updated.SubmittedDate = ad.SubmittedDate
		if err := l.backend.UpdateAd(ctx, updated); err != nil {
			return fmt.Errorf("обновление объявления: %w", err)
		}
		l.ads[i] = updated
		l.notify(Event{Type: eventType, Entity: "advertisement", ID: id, Status: string(updated.Status)})
		return nil
	}
	return nil
}

func (l *Lifecycle) notify(event Event) {
	if l.notifier != nil {
		l.notifier.Notify(event)
	}
}
