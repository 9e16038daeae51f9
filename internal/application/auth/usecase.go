package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
	"github.com/jhoicas/Quotation-api/pkg/jwt"
)

// DefaultBcryptCost is the work factor used when Config.BcryptCost is zero.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config groups the use case settings.
type Config struct {
	JWT JWTConfig
	// ResetKey, when set, must accompany admin password resets.
	ResetKey   string
	BcryptCost int
}

// AuthUseCase registers, authenticates and maintains staff accounts.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cfg      Config
	now      func() time.Time
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, cfg Config) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	return &AuthUseCase{userRepo: userRepo, cfg: cfg, now: time.Now}
}

// ResetKeyConfigured reports whether admin resets are gated by a key.
func (uc *AuthUseCase) ResetKeyConfigured() bool {
	return uc.cfg.ResetKey != ""
}

// NormalizeUsername trims and lower-cases a username.
func NormalizeUsername(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Register creates an account and signs a token for it.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthUserResponse, error) {
	username := NormalizeUsername(in.Username)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || in.Password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: username, password and fullName", domain.ErrMissingField)
	}
	role := entity.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of Admin, Manager, User", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		Location:     strings.TrimSpace(in.Location),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.withToken(user)
}

// Login verifies the credentials. The inactive state is reported only to
// callers who proved the password, so it cannot be used to probe accounts.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthUserResponse, error) {
	username := NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password", domain.ErrMissingField)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return uc.withToken(user)
}

// Me returns the profile of the authenticated user.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Location:  user.Location,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile changes full name, location and password when provided,
// then signs a fresh token.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.AuthUserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if v := strings.TrimSpace(in.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		user.Location = v
	}
	if in.Password != "" {
		hash, err := uc.hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.withToken(user)
}

// AdminResetPassword sets a new password for username without a session.
// When a reset key is configured, resetKey must match it.
func (uc *AuthUseCase) AdminResetPassword(ctx context.Context, in dto.AdminResetPasswordRequest, resetKey string) (*dto.ResetPasswordResponse, error) {
	if uc.cfg.ResetKey != "" && subtle.ConstantTimeCompare([]byte(resetKey), []byte(uc.cfg.ResetKey)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	username := NormalizeUsername(in.Username)
	if username == "" || in.NewPassword == "" {
		return nil, fmt.Errorf("%w: username and newPassword", domain.ErrMissingField)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := uc.hash(in.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResponse{
		Username: user.Username,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}

func (uc *AuthUseCase) hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (uc *AuthUseCase) withToken(u *entity.User) (*dto.AuthUserResponse, error) {
	token, err := jwt.Generate(uc.cfg.JWT.Secret, u.ID, string(u.Role), uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.AuthUserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     string(u.Role),
		Location: u.Location,
		Token:    token,
	}, nil
}
