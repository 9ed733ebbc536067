package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// ErrInvalidToken токен не распарсился или не содержит id пользователя.
var ErrInvalidToken = errors.New("token does not carry a user id")

// tokenClaims claims токена платформы. Бэкенд кладёт id пользователя
// то в "id", то в "userId" - читаем оба.
type tokenClaims struct {
	jwt.RegisteredClaims
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// DecodeIdentity восстанавливает личность из bearer-токена.
// Подпись не проверяется: токен проверяет бэкенд на каждом запросе,
// клиенту нужен только claim с id.
func DecodeIdentity(token string) (*model.Identity, error) {
	claims := &tokenClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	userID := claims.ID
	if userID == "" {
		userID = claims.UserID
	}
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
