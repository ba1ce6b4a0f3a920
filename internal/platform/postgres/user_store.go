package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rburris/roster-api/internal/domain"
	"github.com/rburris/roster-api/internal/platform/logger"
	"github.com/rburris/roster-api/internal/redact"
	"github.com/rburris/roster-api/internal/store"
)

// userColumns is the column list every user statement selects or returns, in
// scan order.
const userColumns = "id, username, first_name, last_name, created_at, updated_at"

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database as the storage backend. Each operation is one SQL
// statement, so the pooled connection it borrows is held for exactly the
// statement's duration and released on every exit path.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface.
var _ store.UserStore = (*PostgresUserStore)(nil)

// userRecord is the storage shape of a user row: optional names as NULLs,
// timestamps as epoch milliseconds. It is the only shape exchanged with the
// database.
type userRecord struct {
	ID        string
	Username  string
	FirstName sql.NullString
	LastName  sql.NullString
	CreatedAt int64
	UpdatedAt int64
}

// newUserRecord converts a domain user into its storage shape.
func newUserRecord(u *domain.User) userRecord {
	rec := userRecord{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UnixMilli(),
		UpdatedAt: u.UpdatedAt.UnixMilli(),
	}
	if u.FirstName != nil {
		rec.FirstName = sql.NullString{String: *u.FirstName, Valid: true}
	}
	if u.LastName != nil {
		rec.LastName = sql.NullString{String: *u.LastName, Valid: true}
	}
	return rec
}

// toDomain converts a stored row back into a domain user. Rows are written
// with positive epoch-millisecond stamps only, so anything else is a broken
// write invariant and surfaces as store.ErrCorruptRecord.
func (r userRecord) toDomain() (*domain.User, error) {
	createdAt, err := timeFromMillis(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s created_at: %v", store.ErrCorruptRecord, r.ID, err)
	}
	updatedAt, err := timeFromMillis(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s updated_at: %v", store.ErrCorruptRecord, r.ID, err)
	}

	user := &domain.User{
		ID:        r.ID,
		Username:  r.Username,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if r.FirstName.Valid {
		user.FirstName = &r.FirstName.String
	}
	if r.LastName.Valid {
		user.LastName = &r.LastName.String
	}
	return user, nil
}

// timeFromMillis converts a stored epoch-millisecond stamp to a time.
func timeFromMillis(ms int64) (time.Time, error) {
	if ms <= 0 {
		return time.Time{}, fmt.Errorf("non-positive epoch milliseconds %d", ms)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUserRecord scans one row laid out as userColumns.
func scanUserRecord(row rowScanner) (userRecord, error) {
	var rec userRecord
	err := row.Scan(
		&rec.ID,
		&rec.Username,
		&rec.FirstName,
		&rec.LastName,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

// List implements store.UserStore.List.
// It returns every user ordered by id; ids are time-ordered, so this is
// creation order.
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", redact.Error(err)))
		}
	}()

	users := []domain.User{}
	for rows.Next() {
		rec, err := scanUserRecord(rows)
		if err != nil {
			log.Error("failed to scan user row",
				slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}

		user, err := rec.toDomain()
		if err != nil {
			log.Error("corrupt user row",
				slog.String("error", err.Error()),
				slog.String("user_id", rec.ID))
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	log.Debug("listed users", slog.Int("count", len(users)))
	return users, nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	rec, err := scanUserRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, MapError(err)
	}

	user, err := rec.toDomain()
	if err != nil {
		log.Error("corrupt user row",
			slog.String("error", err.Error()),
			slog.String("user_id", id))
		return nil, err
	}

	log.Debug("user retrieved", slog.String("user_id", user.ID))
	return user, nil
}

// Create implements store.UserStore.Create.
// The input is expected to have passed the validation gate already; the only
// input-level failure left is the uniqueness constraint, which is the
// serialization point for concurrent creates of the same username.
// Returns store.ErrUsernameExists when that constraint rejects the row.
func (s *PostgresUserStore) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := newUserRecord(domain.NewUser(input))

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`

	stored, err := scanUserRecord(s.db.QueryRowContext(
		ctx,
		query,
		rec.ID,
		rec.Username,
		rec.FirstName,
		rec.LastName,
		rec.CreatedAt,
		rec.UpdatedAt,
	))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already taken",
				slog.String("username", rec.Username))
			return nil, fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", rec.ID))
		return nil, MapError(err)
	}

	user, err := stored.toDomain()
	if err != nil {
		log.Error("corrupt user row after insert",
			slog.String("error", err.Error()),
			slog.String("user_id", rec.ID))
		return nil, err
	}

	log.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Update implements store.UserStore.Update.
// The SET clause is built from the update directive: kept fields never
// appear in it, cleared fields are set to NULL, set fields take the new
// value. UpdatedAt is always refreshed, even for an empty update.
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrUsernameExists on a uniqueness conflict.
func (s *PostgresUserStore) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := []string{"updated_at = $1"}
	args := []any{time.Now().UTC().UnixMilli()}

	if update.Username != nil {
		args = append(args, *update.Username)
		set = append(set, fmt.Sprintf("username = $%d", len(args)))
	}
	set, args = appendOptionalSet(set, args, "first_name", update.FirstName)
	set, args = appendOptionalSet(set, args, "last_name", update.LastName)

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), userColumns)

	stored, err := scanUserRecord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.String("user_id", id))
			return nil, store.ErrUserNotFound
		}
		if IsUniqueViolation(err) {
			log.Warn("username already taken on update",
				slog.String("user_id", id))
			return nil, fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, MapError(err)
	}

	user, err := stored.toDomain()
	if err != nil {
		log.Error("corrupt user row after update",
			slog.String("error", err.Error()),
			slog.String("user_id", id))
		return nil, err
	}

	log.Info("user updated", slog.String("user_id", user.ID))
	return user, nil
}

// appendOptionalSet translates one tri-state directive into a SET clause.
// Keep contributes nothing. Column names here are code constants, never
// caller input.
func appendOptionalSet(set []string, args []any, column string, directive domain.OptionalUpdate) ([]string, []any) {
	switch directive.State {
	case domain.FieldClear:
		set = append(set, column+" = NULL")
	case domain.FieldSet:
		args = append(args, directive.Value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	return set, args
}

// Delete implements store.UserStore.Delete.
// The RETURNING clause makes the removal and the snapshot a single atomic
// statement: at most one concurrent caller observes the row, and the
// returned state is exactly what was removed.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns + `
	`

	rec, err := scanUserRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for delete", slog.String("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, MapError(err)
	}

	user, err := rec.toDomain()
	if err != nil {
		log.Error("corrupt user row on delete",
			slog.String("error", err.Error()),
			slog.String("user_id", id))
		return nil, err
	}

	log.Info("user deleted",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}
