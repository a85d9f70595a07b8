package sqlite

import (
	"context"
	"database/sql"
	"errors"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

const userColumns = `id, email, password_hash, reset_token, reset_expires, created_at`

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	u = user.User{
		ID:           user.ID(uuid.NewString()),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt.UTC(),
	}
	if err = u.Validate(); err != nil {
		return u, err
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO "user" (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		string(u.ID),
		string(u.Email),
		string(u.PasswordHash),
		u.CreatedAt.UnixNano(),
	)
	if isUniqueViolation(err) {
		return user.User{}, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = ?`, string(id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = ?`, string(email))
}

// GetByEmailForUpdate relies on the unit of work holding the database write
// lock; SQLite has no row-level locks.
func (r *UserRepository) GetByEmailForUpdate(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.GetByEmail(ctx, email)
}

func (r *UserRepository) Save(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	resetToken, resetExpires := encodePasswordReset(u.PasswordReset)
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO "user" (id, email, password_hash, reset_token, reset_expires, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			reset_token = excluded.reset_token,
			reset_expires = excluded.reset_expires`,
		string(u.ID),
		string(u.Email),
		string(u.PasswordHash),
		resetToken,
		resetExpires,
		u.CreatedAt.UnixNano(),
	)
	if isUniqueViolation(err) {
		return user.ErrEmailAlreadyExists
	}
	return err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (u user.User, err error) {
	var (
		id, email, passwordHash string
		resetToken              sql.NullString
		resetExpires            sql.NullInt64
		createdAt               int64
	)
	err = r.db.QueryRowContext(ctx, query, arg).
		Scan(&id, &email, &passwordHash, &resetToken, &resetExpires, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	if resetToken.Valid != resetExpires.Valid {
		return u, e.NewInvalidStateError("reset token and expiration must be set together for user %s", id)
	}
	u = user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    time.Unix(0, createdAt).UTC(),
	}
	if resetToken.Valid {
		u.PasswordReset = c.NewOptional(
			user.PasswordReset{
				Token:     user.PasswordResetToken(resetToken.String),
				ExpiresAt: time.Unix(0, resetExpires.Int64).UTC(),
			},
			true,
		)
	}
	if err = u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func encodePasswordReset(reset c.Optional[user.PasswordReset]) (sql.NullString, sql.NullInt64) {
	if !reset.IsPresent {
		return sql.NullString{}, sql.NullInt64{}
	}
	return sql.NullString{String: string(reset.Value.Token), Valid: true},
		sql.NullInt64{Int64: reset.Value.ExpiresAt.UnixNano(), Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
