package session

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return newStoreWithQuerier(mock), mock
}

func TestSaveToken(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO chat_sessions").
		WithArgs(int64(42), "token-abc").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.SaveToken(context.Background(), 42, "token-abc")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToken(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT token FROM chat_sessions").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"token"}).AddRow("token-abc"))

	token, err := store.Token(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenNoSession(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT token FROM chat_sessions").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"token"}))

	_, err := store.Token(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSession(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM chat_sessions").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := store.DeleteSession(context.Background(), 42)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRecentCounselor(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT recent_counselors FROM chat_sessions").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"recent_counselors"}).AddRow([]string{"old-1", "old-2"}))
	mock.ExpectExec("UPDATE chat_sessions SET recent_counselors").
		WithArgs(int64(42), []string{"new", "old-1", "old-2"}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := store.AddRecentCounselor(context.Background(), 42, "new")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeRecent(t *testing.T) {
	// Дубликат переезжает в начало
	assert.Equal(t,
		[]string{"b", "a", "c"},
		mergeRecent([]string{"a", "b", "c"}, "b", 10))

	// Новый id встаёт первым
	assert.Equal(t,
		[]string{"d", "a", "b"},
		mergeRecent([]string{"a", "b"}, "d", 10))

	// Лимит обрезает хвост
	assert.Equal(t,
		[]string{"x", "a", "b"},
		mergeRecent([]string{"a", "b", "c"}, "x", 3))

	// Пустая история
	assert.Equal(t, []string{"a"}, mergeRecent(nil, "a", 10))
}
