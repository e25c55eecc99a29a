package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// User is an account row. Identity is the WeChat openid; there are no
// password credentials anywhere in this system.
type User struct {
	ID         int64
	OpenID     string
	Nickname   string
	ShareCount int
	CreatedAt  time.Time
}

// UserRepository exposes the account operations the login and share
// flows need.
type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// GetByOpenID fetches a user by WeChat openid.
func (r *UserRepository) GetByOpenID(ctx context.Context, openid string) (*User, error) {
	return r.scanUser(ctx, `SELECT id, openid, nickname, share_count, created_at FROM users WHERE openid = $1`, openid)
}

// Create inserts a new user keyed by openid.
func (r *UserRepository) Create(ctx context.Context, openid, nickname string) (*User, error) {
	var user User
	var nick pgtype.Text
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (openid, nickname) VALUES ($1, NULLIF($2, '')) RETURNING id, openid, nickname, share_count, created_at`,
		openid, nickname,
	).Scan(&user.ID, &user.OpenID, &nick, &user.ShareCount, &user.CreatedAt)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("create user: %w", err))
	}
	user.Nickname = nick.String
	return &user, nil
}

// UpdateNickname replaces a user's nickname.
func (r *UserRepository) UpdateNickname(ctx context.Context, id int64, nickname string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET nickname = $1 WHERE id = $2`, nickname, id)
	if err != nil {
		return wrapTransient(fmt.Errorf("update nickname: %w", err))
	}
	return nil
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.scanUser(ctx, `SELECT id, openid, nickname, share_count, created_at FROM users WHERE id = $1`, id)
}

// IncrementShareCount bumps the one-time share counter and reports
// whether this was the first share.
func (r *UserRepository) IncrementShareCount(ctx context.Context, id int64) (first bool, err error) {
	var count int
	err = r.db.QueryRow(ctx,
		`UPDATE users SET share_count = share_count + 1 WHERE id = $1 RETURNING share_count`,
		id,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, wrapTransient(fmt.Errorf("increment share count: %w", err))
	}
	return count == 1, nil
}

func (r *UserRepository) scanUser(ctx context.Context, sql string, arg any) (*User, error) {
	var user User
	var nick pgtype.Text
	err := r.db.QueryRow(ctx, sql, arg).Scan(&user.ID, &user.OpenID, &nick, &user.ShareCount, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, wrapTransient(fmt.Errorf("fetch user: %w", err))
	}
	user.Nickname = nick.String
	return &user, nil
}
