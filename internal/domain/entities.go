package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Recommendation описывает результат подбора питомца для пользователя.
type Recommendation struct {
	PetID   string   `json:"petId"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// UnmarshalJSON принимает дробную оценку и округляет её до целого.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var wire struct {
		PetID   string   `json:"petId"`
		Score   float64  `json:"score"`
		Reasons []string `json:"reasons"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Recommendation{PetID: wire.PetID, Score: int(math.Round(wire.Score)), Reasons: wire.Reasons}
	return nil
}

// ScoreSnapshot хранит последний сохранённый набор оценок совместимости.
type ScoreSnapshot struct {
	SavedAt          int64          `json:"savedAt"`
	ScoresByEntityID map[string]int `json:"scoresByEntityId"`
}

// SavedTime возвращает момент сохранения снимка.
func (s ScoreSnapshot) SavedTime() time.Time {
	return time.UnixMilli(s.SavedAt)
}

// AdoptionRequestPayload содержит тело запроса на усыновление.
// AIReasons приходят из локального кэша, поэтому тип элементов не гарантирован.
type AdoptionRequestPayload struct {
	PetID              string
	Message            string
	CompatibilityScore *float64
	AIReasons          []any
}

// AdoptionRequest представляет созданную на сервере заявку.
type AdoptionRequest struct {
	ID                 string    `json:"id"`
	PetID              string    `json:"petId"`
	UserID             string    `json:"userId,omitempty"`
	Message            string    `json:"message"`
	Status             string    `json:"status,omitempty"`
	CompatibilityScore *int      `json:"compatibilityScore,omitempty"`
	AIReasons          []string  `json:"aiReasons,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

// Category описывает категорию товаров магазина.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryInput содержит поля для создания и изменения категории.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CartItem описывает позицию в корзине.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentInfo содержит необязательные сведения об оплате заказа.
type PaymentInfo struct {
	Method    string `json:"method,omitempty"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
}

// CreateOrderParams описывает новый заказ.
type CreateOrderParams struct {
	Address string       `json:"address"`
	Items   []CartItem   `json:"items"`
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// OrderItem описывает позицию оформленного заказа.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

// CustomerOrder представляет заказ пользователя.
type CustomerOrder struct {
	ID        string       `json:"id"`
	Address   string       `json:"address"`
	Items     []OrderItem  `json:"items"`
	Total     float64      `json:"total,omitempty"`
	Status    string       `json:"status,omitempty"`
	Payment   *PaymentInfo `json:"payment,omitempty"`
	CreatedAt time.Time    `json:"createdAt,omitempty"`
}
