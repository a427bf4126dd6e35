package matching

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/domain"
)

// Service связывает подбор на сервере с локальным кэшем оценок.
type Service struct {
	api      domain.MatchmakingAPI
	adoption domain.AdoptionAPI
	cache    domain.ScoreCache
	log      zerolog.Logger
}

// NewService создаёт сервис подбора.
func NewService(api domain.MatchmakingAPI, adoption domain.AdoptionAPI, cache domain.ScoreCache, logger zerolog.Logger) *Service {
	return &Service{api: api, adoption: adoption, cache: cache, log: logger}
}

// Refresh запрашивает рекомендации и сохраняет их в кэш.
// Ошибки транспорта возвращаются, ошибки кэша нет.
func (s *Service) Refresh(ctx context.Context, token string) ([]domain.Recommendation, error) {
	recs, err := s.api.Recommendations(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}
	s.cache.Write(recs)
	s.log.Info().Int("count", len(recs)).Msg("matching: recommendations cached")
	return recs, nil
}

// EnsureFresh обновляет кэш, только если действующего снимка нет.
// Возвращает true, если был выполнен запрос к серверу.
func (s *Service) EnsureFresh(ctx context.Context, token string) (bool, error) {
	if s.cache.HasValidSnapshot() {
		return false, nil
	}
	if _, err := s.Refresh(ctx, token); err != nil {
		return true, err
	}
	return true, nil
}

// Submit отправляет заявку на усыновление, подставляя оценку из кэша, если она есть.
func (s *Service) Submit(ctx context.Context, token, petID, message string, reasons []any) (domain.AdoptionRequest, error) {
	payload := domain.AdoptionRequestPayload{PetID: petID, Message: message, AIReasons: reasons}
	if score, ok := s.cache.ScoreFor(petID); ok {
		v := float64(score)
		payload.CompatibilityScore = &v
	}
	created, err := s.adoption.CreateAdoptionRequest(ctx, token, payload)
	if err != nil {
		return domain.AdoptionRequest{}, fmt.Errorf("create adoption request: %w", err)
	}
	return created, nil
}
