package api

import (
	"context"

	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// ClientByID возвращает клиента с вложенными данными пользователя.
func (c *Client) ClientByID(ctx context.Context, token, clientID string) (*model.ClientProfile, error) {
	var profile model.ClientProfile
	if err := c.get(ctx, "/clients/"+clientID, nil, token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ClientProfile возвращает профиль клиента для дашборда.
func (c *Client) ClientProfile(ctx context.Context, token, clientID string) (*model.ClientProfile, error) {
	var profile model.ClientProfile
	if err := c.get(ctx, "/clients/profile/"+clientID, nil, token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
