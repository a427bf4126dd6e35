package domain

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExceeded возвращается, когда хранилищу не хватает места.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageDisabled возвращается, когда локальное хранилище отключено.
	ErrStorageDisabled = errors.New("storage disabled")
)

// KeyValueStore: синхронное строковое хранилище, ограниченное одним пространством имён.
type KeyValueStore interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// ScoreCache хранит оценки совместимости между запусками.
type ScoreCache interface {
	Read() (ScoreSnapshot, bool)
	Write(recs []Recommendation)
	ScoreFor(petID string) (int, bool)
	HasValidSnapshot() bool
}

// DonationLedger помнит кампании, которые пользователь уже поддержал.
type DonationLedger interface {
	List() []string
	Mark(campaignID string)
	Has(campaignID string) bool
}

// MatchmakingAPI получает рекомендации с сервера.
type MatchmakingAPI interface {
	Recommendations(ctx context.Context, token string) ([]Recommendation, error)
}

// AdoptionAPI отправляет заявки на усыновление.
type AdoptionAPI interface {
	CreateAdoptionRequest(ctx context.Context, token string, payload AdoptionRequestPayload) (AdoptionRequest, error)
}

// CategoryAPI управляет категориями магазина.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, token string, in CategoryInput) (Category, error)
	UpdateCategory(ctx context.Context, token, id string, in CategoryInput) (Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
}

// OrderAPI работает с заказами текущего пользователя.
type OrderAPI interface {
	ListOrders(ctx context.Context, token string) ([]CustomerOrder, error)
	CreateOrder(ctx context.Context, token string, params CreateOrderParams) (CustomerOrder, error)
}
