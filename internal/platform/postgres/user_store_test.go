package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rburris/roster-api/internal/domain"
	"github.com/rburris/roster-api/internal/platform/postgres"
	"github.com/rburris/roster-api/internal/store"
)

var userColumns = []string{"id", "username", "first_name", "last_name", "created_at", "updated_at"}

// newTestStore wires a PostgresUserStore to a sqlmock connection with a
// discarded logger.
func newTestStore(t *testing.T) (*postgres.PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return postgres.NewPostgresUserStore(db, log), mock
}

func userRow(id, username string, firstName, lastName any, createdAt, updatedAt int64) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, username, firstName, lastName, createdAt, updatedAt)
}

func TestNewPostgresUserStore(t *testing.T) {
	t.Parallel()

	t.Run("nil db panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			postgres.NewPostgresUserStore(nil, nil)
		})
	})

	t.Run("nil logger is allowed", func(t *testing.T) {
		t.Parallel()
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.NotNil(t, postgres.NewPostgresUserStore(db, nil))
	})
}

func TestPostgresUserStoreGetByID(t *testing.T) {
	t.Run("returns the stored user", func(t *testing.T) {
		s, mock := newTestStore(t)
		createdMs := int64(1700000000000)
		updatedMs := int64(1700000005000)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
			WithArgs("01HV5K3W9XQ64S7V9T1N2R8ZAB").
			WillReturnRows(userRow("01HV5K3W9XQ64S7V9T1N2R8ZAB", "alice", "Alice", nil, createdMs, updatedMs))

		user, err := s.GetByID(context.Background(), "01HV5K3W9XQ64S7V9T1N2R8ZAB")
		require.NoError(t, err)

		assert.Equal(t, "01HV5K3W9XQ64S7V9T1N2R8ZAB", user.ID)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Alice", *user.FirstName)
		assert.Nil(t, user.LastName)
		assert.Equal(t, createdMs, user.CreatedAt.UnixMilli())
		assert.Equal(t, updatedMs, user.UpdatedAt.UnixMilli())
		assert.Equal(t, time.UTC, user.CreatedAt.Location())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
			WithArgs("01HV5K3W9XQ64S7V9T1N2R8ZZZ").
			WillReturnError(sql.ErrNoRows)

		user, err := s.GetByID(context.Background(), "01HV5K3W9XQ64S7V9T1N2R8ZZZ")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt timestamp maps to ErrCorruptRecord", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
			WithArgs("01HV5K3W9XQ64S7V9T1N2R8ZAB").
			WillReturnRows(userRow("01HV5K3W9XQ64S7V9T1N2R8ZAB", "alice", nil, nil, 0, 1700000005000))

		user, err := s.GetByID(context.Background(), "01HV5K3W9XQ64S7V9T1N2R8ZAB")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrCorruptRecord)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStoreList(t *testing.T) {
	t.Run("returns users in id order", func(t *testing.T) {
		s, mock := newTestStore(t)

		rows := sqlmock.NewRows(userColumns).
			AddRow("01HV5K3W9XQ64S7V9T1N2R8ZAA", "alice", "Alice", "Smith", int64(1700000000000), int64(1700000000000)).
			AddRow("01HV5K3W9XQ64S7V9T1N2R8ZAB", "bob", nil, nil, int64(1700000001000), int64(1700000001000))

		mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id`).
			WillReturnRows(rows)

		users, err := s.List(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)

		assert.Equal(t, "alice", users[0].Username)
		require.NotNil(t, users[0].FirstName)
		assert.Equal(t, "Alice", *users[0].FirstName)
		assert.Equal(t, "bob", users[1].Username)
		assert.Nil(t, users[1].FirstName)
		assert.Nil(t, users[1].LastName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		users, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt row aborts the listing", func(t *testing.T) {
		s, mock := newTestStore(t)

		rows := sqlmock.NewRows(userColumns).
			AddRow("01HV5K3W9XQ64S7V9T1N2R8ZAA", "alice", nil, nil, int64(1700000000000), int64(-5))

		mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id`).
			WillReturnRows(rows)

		users, err := s.List(context.Background())
		assert.Nil(t, users)
		assert.ErrorIs(t, err, store.ErrCorruptRecord)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStoreCreate(t *testing.T) {
	t.Run("inserts and returns the stored row", func(t *testing.T) {
		s, mock := newTestStore(t)
		firstName := "Alice"

		mock.ExpectQuery(`INSERT INTO users \((.+)\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\) RETURNING`).
			WithArgs(sqlmock.AnyArg(), "alice", "Alice", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(userRow("01HV5K3W9XQ64S7V9T1N2R8ZAB", "alice", "Alice", nil, int64(1700000000000), int64(1700000000000)))

		user, err := s.Create(context.Background(), domain.CreateUserInput{
			Username:  "alice",
			FirstName: &firstName,
		})
		require.NoError(t, err)

		assert.Equal(t, "01HV5K3W9XQ64S7V9T1N2R8ZAB", user.ID)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Alice", *user.FirstName)
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrUsernameExists", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "alice", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(newPgError("23505"))

		user, err := s.Create(context.Background(), domain.CreateUserInput{Username: "alice"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStoreUpdate(t *testing.T) {
	id := "01HV5K3W9XQ64S7V9T1N2R8ZAB"

	t.Run("empty update still refreshes updated_at", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1 WHERE id = \$2 RETURNING`).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnRows(userRow(id, "alice", nil, nil, int64(1700000000000), int64(1700000009000)))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.UpdatedAt.After(user.CreatedAt))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set username", func(t *testing.T) {
		s, mock := newTestStore(t)
		username := "bob"

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1, username = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(sqlmock.AnyArg(), "bob", id).
			WillReturnRows(userRow(id, "bob", nil, nil, int64(1700000000000), int64(1700000009000)))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear first_name sets the column to NULL", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1, first_name = NULL WHERE id = \$2 RETURNING`).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnRows(userRow(id, "alice", nil, nil, int64(1700000000000), int64(1700000009000)))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{
			FirstName: domain.ClearField(),
		})
		require.NoError(t, err)
		assert.Nil(t, user.FirstName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set every field", func(t *testing.T) {
		s, mock := newTestStore(t)
		username := "bob"

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1, username = \$2, first_name = \$3, last_name = \$4 WHERE id = \$5 RETURNING`).
			WithArgs(sqlmock.AnyArg(), "bob", "Bob", "Jones", id).
			WillReturnRows(userRow(id, "bob", "Bob", "Jones", int64(1700000000000), int64(1700000009000)))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{
			Username:  &username,
			FirstName: domain.SetField("Bob"),
			LastName:  domain.SetField("Jones"),
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Bob", *user.FirstName)
		require.NotNil(t, user.LastName)
		assert.Equal(t, "Jones", *user.LastName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1 WHERE id = \$2 RETURNING`).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnError(sql.ErrNoRows)

		user, err := s.Update(context.Background(), id, domain.UserUpdate{})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrUsernameExists", func(t *testing.T) {
		s, mock := newTestStore(t)
		username := "taken"

		mock.ExpectQuery(`UPDATE users SET updated_at = \$1, username = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(sqlmock.AnyArg(), "taken", id).
			WillReturnError(newPgError("23505"))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{Username: &username})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStoreDelete(t *testing.T) {
	id := "01HV5K3W9XQ64S7V9T1N2R8ZAB"

	t.Run("removes the row and returns its final state", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`DELETE FROM users WHERE id = \$1 RETURNING`).
			WithArgs(id).
			WillReturnRows(userRow(id, "alice", "Alice", nil, int64(1700000000000), int64(1700000005000)))

		user, err := s.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Alice", *user.FirstName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`DELETE FROM users WHERE id = \$1 RETURNING`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		user, err := s.Delete(context.Background(), id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
