package api

import (
	"context"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"go.uber.org/zap"
)

// CreateReviewRequest тело запроса на создание отзыва.
type CreateReviewRequest struct {
	CounselorID string `json:"counselorId"`
	ClientID    string `json:"clientId"`
	Comment     string `json:"comment"`
	Rating      int    `json:"rating"`
}

// CreateReview отправляет отзыв клиента о консультанте.
func (c *Client) CreateReview(ctx context.Context, token string, req CreateReviewRequest) error {
	if err := c.post(ctx, "/reviews", token, req, nil); err != nil {
		return err
	}

	c.logger.Info("Review submitted",
		zap.String("counselor_id", req.CounselorID),
		zap.Int("rating", req.Rating))

	return nil
}

// ClientReviews возвращает все отзывы, оставленные клиентом.
func (c *Client) ClientReviews(ctx context.Context, token, clientID string) ([]model.Review, error) {
	var reviews []model.Review
	if err := c.get(ctx, "/reviews/client/"+clientID, nil, token, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
