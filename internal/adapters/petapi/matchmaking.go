package petapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"pet-adoption-hub/internal/domain"
)

// Recommendations запрашивает результат подбора. Сервер может вернуть массив
// или объект {"recommendations": [...]}.
func (c *Client) Recommendations(ctx context.Context, token string) ([]domain.Recommendation, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "recommendations", "/api/matchmaking/recommendations", token, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Recommendation{}, nil
	}
	var recs []domain.Recommendation
	if trimmed[0] == '{' {
		var wrapped struct {
			Recommendations []domain.Recommendation `json:"recommendations"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("invalid JSON response: %v", err), Err: err}
		}
		recs = wrapped.Recommendations
	} else if err := json.Unmarshal(trimmed, &recs); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("invalid JSON response: %v", err), Err: err}
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return recs, nil
}

var _ domain.MatchmakingAPI = (*Client)(nil)
