package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth/jwt"
	"github.com/mbecker/reloquiz/internal/db/repository"
)

// userStore is the slice of the user repository the login flows need.
type userStore interface {
	GetByOpenID(ctx context.Context, openid string) (*repository.User, error)
	Create(ctx context.Context, openid, nickname string) (*repository.User, error)
	UpdateNickname(ctx context.Context, id int64, nickname string) error
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
	DevLogin    bool // allow the no-WeChat dev login (never in production)
}

// Service handles WeChat login, user upsert and session issuance.
type Service struct {
	users    userStore
	wechat   SessionExchanger
	tokens   *jwt.Manager
	devLogin bool
	logger   zerolog.Logger
}

func NewService(users userStore, wechat SessionExchanger, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		wechat:   wechat,
		tokens:   jwt.NewManager(opts.TokenConfig),
		devLogin: opts.DevLogin,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Session is an issued login session.
type Session struct {
	Token string
	User  *repository.User
}

// ErrDevLoginDisabled rejects dev logins outside development.
var ErrDevLoginDisabled = errors.New("dev login is disabled")

// Login exchanges a WeChat code for an openid, upserts the user and
// issues a session token. A changed nickname is written through.
func (s *Service) Login(ctx context.Context, code, nickname string) (*Session, error) {
	if code == "" {
		return nil, fmt.Errorf("missing login code")
	}

	openid, err := s.wechat.Code2Session(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, openid, nickname)
}

// DevLogin issues a session for a synthetic openid. Only available when
// explicitly enabled at construction time.
func (s *Service) DevLogin(ctx context.Context, nickname string) (*Session, error) {
	if !s.devLogin {
		return nil, ErrDevLoginDisabled
	}
	openid := fmt.Sprintf("dev_test_%d", time.Now().UnixMilli())
	if nickname == "" {
		nickname = "test user"
	}
	return s.establishSession(ctx, openid, nickname)
}

// ValidateToken parses a session token into claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokens.Validate(token)
}

func (s *Service) establishSession(ctx context.Context, openid, nickname string) (*Session, error) {
	user, err := s.users.GetByOpenID(ctx, openid)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user, err = s.users.Create(ctx, openid, nickname)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.logger.Info().Int64("user_id", user.ID).Msg("new user registered")
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	default:
		if nickname != "" && user.Nickname != nickname {
			if err := s.users.UpdateNickname(ctx, user.ID, nickname); err != nil {
				return nil, fmt.Errorf("update nickname: %w", err)
			}
			user.Nickname = nickname
		}
	}

	token, err := s.tokens.Generate(user.ID, user.OpenID)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
