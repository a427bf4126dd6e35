package donations

import (
	"encoding/json"
	"slices"

	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/domain"
	"pet-adoption-hub/internal/infra/metrics"
)

// StorageKey: ключ списка кампаний в локальном хранилище.
const StorageKey = "donated-campaigns"

// Service помнит кампании, которым пользователь уже отправил пожертвование.
type Service struct {
	store domain.KeyValueStore
	log   zerolog.Logger
}

// NewService создаёт учёт пожертвований.
func NewService(store domain.KeyValueStore, logger zerolog.Logger) *Service {
	return &Service{store: store, log: logger}
}

// List возвращает сохранённые идентификаторы в порядке добавления.
// Нестроковые элементы отбрасываются, ошибка разбора даёт пустой список.
func (s *Service) List() []string {
	raw, ok, err := s.store.GetItem(StorageKey)
	if err != nil {
		metrics.IncStorageError("donations", "read")
		s.log.Debug().Err(err).Msg("donations: read failed")
		return []string{}
	}
	if !ok {
		return []string{}
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Debug().Err(err).Msg("donations: malformed list")
		return []string{}
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id, ok := item.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Mark добавляет кампанию, если её ещё нет в списке.
func (s *Service) Mark(campaignID string) {
	ids := s.List()
	if slices.Contains(ids, campaignID) {
		return
	}
	ids = append(ids, campaignID)
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.store.SetItem(StorageKey, string(raw)); err != nil {
		metrics.IncStorageError("donations", "write")
		s.log.Warn().Err(err).Str("campaign", campaignID).Msg("donations: persist failed")
	}
}

// Has сообщает, поддерживал ли пользователь кампанию.
func (s *Service) Has(campaignID string) bool {
	return slices.Contains(s.List(), campaignID)
}

var _ domain.DonationLedger = (*Service)(nil)
