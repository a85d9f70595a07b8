package user

import (
	"context"
	"errors"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, password_hash, reset_token, reset_expires, created_at`

const createUser = `
INSERT INTO "user" (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

const getUserByID = `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

const getUserByEmail = `SELECT ` + userColumns + ` FROM "user" WHERE email = $1`

const getUserByEmailForUpdate = getUserByEmail + ` FOR UPDATE`

const saveUser = `
INSERT INTO "user" (id, email, password_hash, reset_token, reset_expires, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    email = EXCLUDED.email,
    password_hash = EXCLUDED.password_hash,
    reset_token = EXCLUDED.reset_token,
    reset_expires = EXCLUDED.reset_expires`

// DBTX is satisfied by both a pool and a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		uuid.NewString(),
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if isEmailUniqueViolation(err) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	return r.getOne(ctx, getUserByID, string(id))
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.getOne(ctx, getUserByEmail, string(email))
}

func (r *PgxUserRepository) GetByEmailForUpdate(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.getOne(ctx, getUserByEmailForUpdate, string(email))
}

func (r *PgxUserRepository) Save(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	resetToken, resetExpires := encodePasswordReset(u.PasswordReset)
	_, err := r.db.Exec(
		ctx,
		saveUser,
		string(u.ID),
		string(u.Email),
		string(u.PasswordHash),
		resetToken,
		resetExpires,
		u.CreatedAt,
	)
	if isEmailUniqueViolation(err) {
		return user.ErrEmailAlreadyExists
	}
	return err
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg string) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id, email, passwordHash string
		resetToken              pgtype.Text
		resetExpires            pgtype.Timestamptz
		createdAt               time.Time
	)
	err = row.Scan(&id, &email, &passwordHash, &resetToken, &resetExpires, &createdAt)
	if err != nil {
		return u, err
	}
	reset, err := decodePasswordReset(resetToken, resetExpires)
	if err != nil {
		return u, err
	}
	u = user.User{
		ID:            user.ID(id),
		Email:         c.Email(email),
		PasswordHash:  user.PasswordHash(passwordHash),
		PasswordReset: reset,
		CreatedAt:     createdAt.UTC(),
	}
	err = u.Validate()
	if err != nil {
		return u, err
	}
	return u, nil
}

func encodePasswordReset(reset c.Optional[user.PasswordReset]) (pgtype.Text, pgtype.Timestamptz) {
	if !reset.IsPresent {
		return pgtype.Text{Status: pgtype.Null}, pgtype.Timestamptz{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(reset.Value.Token), Status: pgtype.Present},
		pgtype.Timestamptz{Time: reset.Value.ExpiresAt, Status: pgtype.Present}
}

func decodePasswordReset(
	token pgtype.Text,
	expires pgtype.Timestamptz,
) (c.Optional[user.PasswordReset], error) {
	hasToken := token.Status == pgtype.Present
	hasExpires := expires.Status == pgtype.Present
	if hasToken != hasExpires {
		return c.None[user.PasswordReset](), e.NewInvalidStateError("reset token and expiration must be set together")
	}
	if !hasToken {
		return c.None[user.PasswordReset](), nil
	}
	reset := user.PasswordReset{
		Token:     user.PasswordResetToken(token.String),
		ExpiresAt: expires.Time.UTC(),
	}
	return c.NewOptional(reset, true), nil
}

func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME
}
