package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fitlink/api/internal/config"
	"fitlink/api/internal/ids"
	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/security"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, user models.User, status models.Status) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	TouchLastVisited(ctx context.Context, id int64) error
}

// TokenStore is the ledger of issued bearer tokens.
type TokenStore interface {
	Create(ctx context.Context, token models.Token) error
	GetByToken(ctx context.Context, raw string) (models.Token, error)
	SetActive(ctx context.Context, raw string, active bool) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenDenylist mirrors revocations into a fast lookup; failures there are
// logged, not fatal, because the ledger remains authoritative.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

type AuthService struct {
	users    UserStore
	tokens   TokenStore
	denylist TokenDenylist
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenStore, denylist TokenDenylist, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		denylist: denylist,
		cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
	Locale   string
}

// Register creates the user with its main roles, the COMMON sub-role and an
// indefinite COMMON status. An absent role list grants USER; unrecognized
// role strings also fall back to USER instead of erroring.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return models.User{}, ErrBlankField
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	inUse, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return models.User{}, err
	}
	if inUse {
		return models.User{}, ErrEmailTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	roles := resolveRoles(input.Roles)

	now := time.Now().UTC()
	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Locale:       input.Locale,
		MainRoles:    roles,
		SubRoles:     []models.SubRole{models.SubRoleCommon},
		CreatedAt:    now,
	}
	status := models.Status{
		Name:        models.StatusCommon,
		ActivatedAt: now,
		EndsAt:      nil,
	}

	id, err := s.users.Create(ctx, user, status)
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	user.Statuses = []models.Status{status}
	return user, nil
}

func resolveRoles(requested []string) []models.MainRole {
	if requested == nil {
		return []models.MainRole{models.MainRoleUser}
	}
	seen := make(map[models.MainRole]struct{}, len(requested))
	var roles []models.MainRole
	for _, r := range requested {
		role := models.ParseMainRole(r)
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = []models.MainRole{models.MainRoleUser}
	}
	return roles
}

type LoginResult struct {
	Token models.Token
	User  models.User
}

// Login verifies credentials, signs a JWT with subject = username, records
// it in the ledger and stamps the user's last-visited date.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrBadCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrBadCredentials
	}

	roles := make([]string, 0, len(user.MainRoles))
	for _, r := range user.MainRoles {
		roles = append(roles, string(r))
	}

	issued, err := security.IssueAccessToken(s.cfg.Security.JWTSecret, user.ID, user.Username, roles, s.cfg.Security.JWTAccessTTL)
	if err != nil {
		return LoginResult{}, err
	}

	token := models.Token{
		ID:        ids.New(),
		UserID:    user.ID,
		Token:     issued.Token,
		CreatedAt: issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
		Active:    true,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return LoginResult{}, err
	}

	if err := s.users.TouchLastVisited(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("stamp last visit failed")
	}

	return LoginResult{Token: token, User: user}, nil
}

// Logout revokes the ledger row for the presented bearer. An unknown token
// is reported as repository.ErrTokenNotFound; callers treat that as an
// unauthenticated request.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	token, err := s.tokens.GetByToken(ctx, raw)
	if err != nil {
		return err
	}
	if err := s.tokens.SetActive(ctx, raw, false); err != nil {
		return err
	}
	if ttl := time.Until(token.ExpiresAt); ttl > 0 {
		if err := s.denylist.Revoke(ctx, raw, ttl); err != nil {
			s.log.Warn().Err(err).Msg("denylist revoke failed")
		}
	}
	return nil
}

// SweepExpired deletes every ledger row whose expiry date has passed and
// returns the count, zero when nothing qualified.
func (s *AuthService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.tokens.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired tokens swept")
	}
	return deleted, nil
}
