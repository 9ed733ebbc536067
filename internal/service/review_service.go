package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lidiya-fiker/unity-bot/internal/api"
	"go.uber.org/zap"
)

// ErrEmptyComment комментарий пуст после обрезки пробелов.
var ErrEmptyComment = errors.New("review comment is empty")

type ReviewService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewReviewService(apiClient *api.Client, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		api:    apiClient,
		logger: logger,
	}
}

// RatedMap возвращает оценку клиента по id консультанта для всех,
// кому он уже оставил отзыв. Ошибку загрузки не считаем фатальной для
// дашборда: вызывающий решает, показывать ли кнопки оценки.
func (s *ReviewService) RatedMap(ctx context.Context, token, clientID string) (map[string]int, error) {
	reviews, err := s.api.ClientReviews(ctx, token, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client reviews: %w", err)
	}

	rated := make(map[string]int, len(reviews))
	for _, review := range reviews {
		if id := review.RatedCounselorID(); id != "" {
			rated[id] = review.Rating
		}
	}

	return rated, nil
}

// Submit отправляет отзыв. Комментарий без содержимого отклоняется
// до какого-либо обращения к бэкенду.
func (s *ReviewService) Submit(ctx context.Context, token, counselorID, clientID, comment string, rating int) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}

	req := api.CreateReviewRequest{
		CounselorID: counselorID,
		ClientID:    clientID,
		Comment:     comment,
		Rating:      rating,
	}

	if err := s.api.CreateReview(ctx, token, req); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}

	s.logger.Info("Review submitted",
		zap.String("counselor_id", counselorID),
		zap.Int("rating", rating))

	return nil
}
