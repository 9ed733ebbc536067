package api

import (
	"context"

	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// Articles возвращает ленту статей консультантов.
func (c *Client) Articles(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := c.get(ctx, "/articles", nil, "", &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
