package service

import (
	"context"
	"errors"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/config"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdminUsername / password seed the bootstrap account so a fresh
// deployment can always be logged into.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type AuthService interface {
	// IssueToken authenticates a username/password pair and returns a signed
	// bearer token embedding subject and role.
	IssueToken(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	// EnsureDefaultAdmin creates the bootstrap admin account if absent.
	// Idempotent; called once on startup.
	EnsureDefaultAdmin(ctx context.Context) error
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) IssueToken(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sub := ""
	if user.Username != nil {
		sub = *user.Username
	}
	token, err := s.signToken(jwt.MapClaims{"sub": sub, "role": user.Role}, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// authenticate fetches every row matching the username and verifies the
// password against each hash: cashiers all share one sentinel username and
// are told apart only by passcode.
func (s *authService) authenticate(ctx context.Context, username, password string) (*model.User, error) {
	users, err := s.repo.FindAllByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) == nil {
			return &users[i], nil
		}
	}
	return nil, apierror.InvalidCredentials("Incorrect username or password")
}

// signToken signs HS256 claims with the given lifetime, falling back to the
// configured signer default when none is passed.
func (s *authService) signToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.cfg.SignerDefaultTTL
	}
	claims["exp"] = time.Now().Add(ttl).Unix()
	claims["iat"] = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	existing, err := s.repo.FindAllByUsername(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Msg("admin user already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), 12)
	if err != nil {
		return err
	}
	username := defaultAdminUsername
	admin := &model.User{
		FullName:     "Admin User",
		Username:     &username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Email:        "admin@localhost",
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		// Two replicas can race the seed; the partial unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Info().Msg("admin user already exists")
			return nil
		}
		return err
	}
	log.Info().Msg("admin user created")
	return nil
}
