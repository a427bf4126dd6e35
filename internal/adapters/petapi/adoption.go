package petapi

import (
	"context"
	"math"

	"pet-adoption-hub/internal/domain"
)

// MaxAIReasons: сколько строковых причин подбора отправляется на сервер.
const MaxAIReasons = 20

type adoptionRequestBody struct {
	PetID              string   `json:"petId"`
	Message            string   `json:"message"`
	CompatibilityScore *int     `json:"compatibilityScore,omitempty"`
	AIReasons          []string `json:"aiReasons,omitempty"`
}

// SanitizeCompatibilityScore оставляет только конечные значения из [0,100] и округляет их.
func SanitizeCompatibilityScore(score *float64) (int, bool) {
	if score == nil {
		return 0, false
	}
	v := *score
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return 0, false
	}
	return int(math.Round(v)), true
}

// SanitizeAIReasons возвращает первые MaxAIReasons строковых элементов.
func SanitizeAIReasons(reasons []any) []string {
	if reasons == nil {
		return nil
	}
	out := make([]string, 0, min(len(reasons), MaxAIReasons))
	for _, r := range reasons {
		if len(out) == MaxAIReasons {
			break
		}
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// CreateAdoptionRequest отправляет заявку на усыновление.
func (c *Client) CreateAdoptionRequest(ctx context.Context, token string, payload domain.AdoptionRequestPayload) (domain.AdoptionRequest, error) {
	body := adoptionRequestBody{
		PetID:     payload.PetID,
		Message:   payload.Message,
		AIReasons: SanitizeAIReasons(payload.AIReasons),
	}
	if score, ok := SanitizeCompatibilityScore(payload.CompatibilityScore); ok {
		body.CompatibilityScore = &score
	}
	var created domain.AdoptionRequest
	if err := c.post(ctx, "create_adoption_request", "/api/adoption-requests", token, body, &created); err != nil {
		return domain.AdoptionRequest{}, err
	}
	return created, nil
}

var _ domain.AdoptionAPI = (*Client)(nil)
