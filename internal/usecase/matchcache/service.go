package matchcache

import (
	"encoding/json"
	"math"
	"time"

	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/domain"
	"pet-adoption-hub/internal/infra/metrics"
)

const (
	// StorageKey: ключ снимка в локальном хранилище.
	StorageKey = "ai-match-scores"
	// TTL: время жизни снимка целиком.
	TTL = 24 * time.Hour
)

// Service кэширует оценки совместимости. Истечение срока проверяется при чтении.
type Service struct {
	store domain.KeyValueStore
	now   func() time.Time
	log   zerolog.Logger
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger задаёт логгер.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.log = logger
	}
}

// NewService создаёт кэш поверх хранилища.
func NewService(store domain.KeyValueStore, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read возвращает действующий снимок. Любая ошибка трактуется как отсутствие кэша.
func (s *Service) Read() (domain.ScoreSnapshot, bool) {
	snapshot, result := s.lookup()
	return snapshot, result == lookupHit
}

// Результаты поиска в кэше, они же значения метки result.
const (
	lookupHit   = "hit"
	lookupMiss  = "miss"
	lookupStale = "stale"
)

func (s *Service) lookup() (domain.ScoreSnapshot, string) {
	raw, ok, err := s.store.GetItem(StorageKey)
	if err != nil {
		metrics.IncStorageError("matchcache", "read")
		s.log.Debug().Err(err).Msg("matchcache: read failed")
		return domain.ScoreSnapshot{}, lookupMiss
	}
	if !ok {
		return domain.ScoreSnapshot{}, lookupMiss
	}
	snapshot, ok := decodeSnapshot(raw)
	if !ok {
		s.log.Debug().Msg("matchcache: snapshot is malformed")
		return domain.ScoreSnapshot{}, lookupMiss
	}
	// сравнение без вычитания savedAt: крайние значения не переполняют int64
	if snapshot.SavedAt < s.now().UnixMilli()-TTL.Milliseconds() {
		return domain.ScoreSnapshot{}, lookupStale
	}
	return snapshot, lookupHit
}

// Write перезаписывает снимок целиком. При повторе petID побеждает последнее значение.
func (s *Service) Write(recs []domain.Recommendation) {
	scores := make(map[string]int, len(recs))
	for _, rec := range recs {
		scores[rec.PetID] = rec.Score
	}
	snapshot := domain.ScoreSnapshot{SavedAt: s.now().UnixMilli(), ScoresByEntityID: scores}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("matchcache: marshal snapshot")
		return
	}
	if err := s.store.SetItem(StorageKey, string(raw)); err != nil {
		metrics.IncStorageError("matchcache", "write")
		s.log.Warn().Err(err).Int("scores", len(scores)).Msg("matchcache: persist snapshot failed")
		return
	}
	metrics.IncScoreCacheWrite()
}

// ScoreFor возвращает оценку питомца из действующего снимка.
func (s *Service) ScoreFor(petID string) (int, bool) {
	snapshot, result := s.lookup()
	if result != lookupHit {
		metrics.ObserveScoreLookup(result)
		return 0, false
	}
	score, ok := snapshot.ScoresByEntityID[petID]
	if !ok {
		metrics.ObserveScoreLookup(lookupMiss)
		return 0, false
	}
	metrics.ObserveScoreLookup(lookupHit)
	return score, true
}

// HasValidSnapshot сообщает, есть ли завершённый и не истёкший подбор.
func (s *Service) HasValidSnapshot() bool {
	_, ok := s.Read()
	return ok
}

type rawSnapshot struct {
	SavedAt          json.RawMessage            `json:"savedAt"`
	ScoresByEntityID map[string]json.RawMessage `json:"scoresByEntityId"`
}

// decodeSnapshot требует числовой savedAt в пределах int64 и объект scoresByEntityId.
// Нечисловые оценки пропускаются, дробные округляются.
func decodeSnapshot(raw string) (domain.ScoreSnapshot, bool) {
	var parsed rawSnapshot
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return domain.ScoreSnapshot{}, false
	}
	var savedAt float64
	if isNull(parsed.SavedAt) || json.Unmarshal(parsed.SavedAt, &savedAt) != nil {
		return domain.ScoreSnapshot{}, false
	}
	if math.IsNaN(savedAt) || savedAt < math.MinInt64 || savedAt >= math.MaxInt64 {
		return domain.ScoreSnapshot{}, false
	}
	if parsed.ScoresByEntityID == nil {
		return domain.ScoreSnapshot{}, false
	}
	scores := make(map[string]int, len(parsed.ScoresByEntityID))
	for id, value := range parsed.ScoresByEntityID {
		var score float64
		if isNull(value) || json.Unmarshal(value, &score) != nil {
			continue
		}
		scores[id] = int(math.Round(score))
	}
	return domain.ScoreSnapshot{SavedAt: int64(savedAt), ScoresByEntityID: scores}, true
}

var _ domain.ScoreCache = (*Service)(nil)

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
