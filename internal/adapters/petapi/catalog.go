package petapi

import (
	"context"
	"net/url"

	"pet-adoption-hub/internal/domain"
)

func categoryPath(id string) string {
	return "/api/categories/" + url.PathEscape(id)
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "list_categories", "/api/categories", "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, in domain.CategoryInput) (domain.Category, error) {
	var category domain.Category
	if err := c.post(ctx, "create_category", "/api/categories", token, in, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, in domain.CategoryInput) (domain.Category, error) {
	var category domain.Category
	if err := c.put(ctx, "update_category", categoryPath(id), token, in, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// DeleteCategory удаляет категорию; тело ответа не разбирается.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.delete(ctx, "delete_category", categoryPath(id), token)
}

var _ domain.CategoryAPI = (*Client)(nil)
