package petapi

import (
	"context"

	"pet-adoption-hub/internal/domain"
)

// ListOrders возвращает заказы текущего пользователя.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.CustomerOrder, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	var orders []domain.CustomerOrder
	if err := c.get(ctx, "list_orders", "/api/orders", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder оформляет заказ из адреса, позиций корзины и необязательных данных оплаты.
func (c *Client) CreateOrder(ctx context.Context, token string, params domain.CreateOrderParams) (domain.CustomerOrder, error) {
	if token == "" {
		return domain.CustomerOrder{}, ErrTokenRequired
	}
	if params.Items == nil {
		params.Items = []domain.CartItem{}
	}
	var order domain.CustomerOrder
	if err := c.post(ctx, "create_order", "/api/orders", token, params, &order); err != nil {
		return domain.CustomerOrder{}, err
	}
	return order, nil
}

var _ domain.OrderAPI = (*Client)(nil)
