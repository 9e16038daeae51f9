package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Quotation-api/internal/application/auth"
	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Quotation-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "auth-usecase-test-secret"

func newUseCase(t *testing.T, resetKey string) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	uc := auth.NewAuthUseCase(repo, auth.Config{
		JWT:        auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
		ResetKey:   resetKey,
		BcryptCost: bcrypt.MinCost,
	})
	return uc, repo
}

func register(t *testing.T, uc *auth.AuthUseCase, username, password string) *dto.AuthUserResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: username, Password: password, FullName: "Test " + username,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_DefaultsAndToken(t *testing.T) {
	uc, repo := newUseCase(t, "")
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "  Vikram ", Password: "123", FullName: " Vikram ", Location: "Delhi",
	})
	require.NoError(t, err)

	assert.Equal(t, "vikram", out.Username)
	assert.Equal(t, "Vikram", out.FullName)
	assert.Equal(t, "User", out.Role)
	assert.Equal(t, "Delhi", out.Location)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, userID)
	assert.Equal(t, "User", role)

	stored, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "123", stored.PasswordHash)
	assert.True(t, stored.IsActive)
}

func TestRegister_DuplicateIsCaseInsensitive(t *testing.T) {
	uc, _ := newUseCase(t, "")
	register(t, uc, "vikram", "123")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "Vikram", Password: "x", FullName: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newUseCase(t, "")
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "b", FullName: "   "})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "b", FullName: "A", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPasswordLongerThanBcryptLimit(t *testing.T) {
	uc, _ := newUseCase(t, "")
	ctx := context.Background()
	long := strings.Repeat("x", auth.MaxPasswordBytes+1)

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: long, FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)

	user := register(t, uc, "b", strings.Repeat("x", auth.MaxPasswordBytes))
	_, err = uc.UpdateProfile(ctx, user.ID, dto.UpdateProfileRequest{Password: long})
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)

	_, err = uc.AdminResetPassword(ctx, dto.AdminResetPasswordRequest{Username: "b", NewPassword: long}, "")
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	uc, repo := newUseCase(t, "")
	ctx := context.Background()
	created := register(t, uc, "ravi", "123")

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "RAVI", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ravi", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ravi"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	// deactivate
	u, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, repo.Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ravi", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "inactive state stays hidden without the password")

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ravi", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Profile
// ──────────────────────────────────────────────────────────────────────────────

func TestMeAndUpdateProfile(t *testing.T) {
	uc, _ := newUseCase(t, "")
	ctx := context.Background()
	created := register(t, uc, "vikram", "123")

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "vikram", me.Username)
	assert.True(t, me.IsActive)

	updated, err := uc.UpdateProfile(ctx, created.ID, dto.UpdateProfileRequest{Location: "Pune", Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.Location)
	assert.Equal(t, "Test vikram", updated.FullName, "empty fields are left unchanged")
	assert.NotEmpty(t, updated.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "vikram", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "vikram", Password: "new"})
	assert.NoError(t, err)

	_, err = uc.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin reset
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminResetPassword_Open(t *testing.T) {
	uc, _ := newUseCase(t, "")
	ctx := context.Background()
	register(t, uc, "ravi", "123")

	out, err := uc.AdminResetPassword(ctx, dto.AdminResetPasswordRequest{Username: "Ravi", NewPassword: "456"}, "")
	require.NoError(t, err)
	assert.Equal(t, "ravi", out.Username)
	assert.Equal(t, "User", out.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ravi", Password: "456"})
	assert.NoError(t, err)

	_, err = uc.AdminResetPassword(ctx, dto.AdminResetPasswordRequest{Username: "ghost", NewPassword: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AdminResetPassword(ctx, dto.AdminResetPasswordRequest{Username: "ravi"}, "")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestAdminResetPassword_KeyRequired(t *testing.T) {
	uc, _ := newUseCase(t, "s3cret")
	ctx := context.Background()
	register(t, uc, "ravi", "123")
	assert.True(t, uc.ResetKeyConfigured())

	req := dto.AdminResetPasswordRequest{Username: "ravi", NewPassword: "456"}
	_, err := uc.AdminResetPassword(ctx, req, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.AdminResetPassword(ctx, req, "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.AdminResetPassword(ctx, req, "s3cret")
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seed
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_IsIdempotent(t *testing.T) {
	uc, _ := newUseCase(t, "")
	ctx := context.Background()

	first, err := uc.Seed(ctx, auth.DefaultSeedUsers)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, first[0].Created)
	assert.True(t, first[1].Created)

	second, err := uc.Seed(ctx, auth.DefaultSeedUsers)
	require.NoError(t, err)
	assert.False(t, second[0].Created)
	assert.False(t, second[1].Created)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "vikram", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", out.Role)
	assert.Equal(t, "Delhi", out.Location)
}
