package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/user"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"
const USERNAME_CONSTRAINT_NAME = "user_username_idx"

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db Querier
}

func NewPgxRepository(db Querier) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

const userColumns = `
	id, email, username, password_hash,
	password_reset_token_hash, password_reset_token_expires_at, created_at`

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING`+userColumns,
		string(input.Email),
		string(input.Username),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch pgErr.ConstraintName {
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	err = u.Validate()
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT`+userColumns+` FROM "user" WHERE id = $1`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT`+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id user.ID,
	tokenHash user.PasswordResetTokenHash,
	expiresAt time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		 SET password_reset_token_hash = $2, password_reset_token_expires_at = $3
		 WHERE id = $1`,
		int64(id),
		string(tokenHash),
		expiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// ConsumePasswordResetToken relies on a single conditional UPDATE for the
// single-use guarantee: of two concurrent consumers of the same token,
// only one sees a row where the hash still matches.
func (r *PgxUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	tokenHash user.PasswordResetTokenHash,
	now time.Time,
	newPasswordHash user.PasswordHash,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		 SET password_hash = $3,
		     password_reset_token_hash = NULL,
		     password_reset_token_expires_at = NULL
		 WHERE password_reset_token_hash = $1 AND password_reset_token_expires_at > $2
		 RETURNING`+userColumns,
		string(tokenHash),
		now,
		string(newPasswordHash),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var id int64
	var email, username, passwordHash string
	var resetTokenHash sql.NullString
	var resetTokenExpiresAt sql.NullTime
	var createdAt time.Time
	err = row.Scan(
		&id,
		&email,
		&username,
		&passwordHash,
		&resetTokenHash,
		&resetTokenExpiresAt,
		&createdAt,
	)
	if err != nil {
		return u, err
	}
	u = user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		Username:     user.Username(username),
		PasswordHash: user.PasswordHash(passwordHash),
		PasswordResetTokenHash: c.NewOptional(
			user.PasswordResetTokenHash(resetTokenHash.String), resetTokenHash.Valid,
		),
		PasswordResetTokenExpiresAt: c.NewOptional(
			resetTokenExpiresAt.Time, resetTokenExpiresAt.Valid,
		),
		CreatedAt: createdAt,
	}
	return u, nil
}
