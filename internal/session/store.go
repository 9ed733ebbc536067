package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoSession чат ещё не логинился.
var ErrNoSession = errors.New("no session for this chat")

// Сколько последних консультантов помним на чат.
const recentCounselorsLimit = 10

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store единственное долговременное состояние на стороне клиента:
// bearer-токен и список недавних консультантов на каждый чат.
type Store struct {
	pool querier
}

// NewStore создаёт хранилище поверх пула pgx.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// newStoreWithQuerier для подмены пула моком в тестах.
func newStoreWithQuerier(q querier) *Store {
	return &Store{pool: q}
}

// SaveToken сохраняет bearer-токен чата, перезаписывая прежний.
func (s *Store) SaveToken(ctx context.Context, chatID int64, token string) error {
	query := `
		INSERT INTO chat_sessions (chat_id, token)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET token = EXCLUDED.token, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, chatID, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	return nil
}

// Token возвращает bearer-токен чата или ErrNoSession.
func (s *Store) Token(ctx context.Context, chatID int64) (string, error) {
	query := `SELECT token FROM chat_sessions WHERE chat_id = $1`

	var token string
	err := s.pool.QueryRow(ctx, query, chatID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("get token: %w", err)
	}

	return token, nil
}

// DeleteSession удаляет сессию чата целиком (logout).
func (s *Store) DeleteSession(ctx context.Context, chatID int64) error {
	query := `DELETE FROM chat_sessions WHERE chat_id = $1`

	if _, err := s.pool.Exec(ctx, query, chatID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// RecentCounselors возвращает id недавних консультантов, свежие первыми.
func (s *Store) RecentCounselors(ctx context.Context, chatID int64) ([]string, error) {
	query := `SELECT recent_counselors FROM chat_sessions WHERE chat_id = $1`

	var ids []string
	err := s.pool.QueryRow(ctx, query, chatID).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recent counselors: %w", err)
	}

	return ids, nil
}

// AddRecentCounselor добавляет консультанта в начало списка недавних.
// Дубликат переезжает наверх, длина списка ограничена.
func (s *Store) AddRecentCounselor(ctx context.Context, chatID int64, counselorID string) error {
	current, err := s.RecentCounselors(ctx, chatID)
	if err != nil {
		return err
	}

	updated := mergeRecent(current, counselorID, recentCounselorsLimit)

	query := `UPDATE chat_sessions SET recent_counselors = $2, updated_at = now() WHERE chat_id = $1`
	if _, err := s.pool.Exec(ctx, query, chatID, updated); err != nil {
		return fmt.Errorf("update recent counselors: %w", err)
	}

	return nil
}

// mergeRecent ставит id первым, убирает дубликат и обрезает хвост.
func mergeRecent(ids []string, id string, limit int) []string {
	merged := make([]string, 0, len(ids)+1)
	merged = append(merged, id)
	for _, existing := range ids {
		if existing != id {
			merged = append(merged, existing)
		}
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
