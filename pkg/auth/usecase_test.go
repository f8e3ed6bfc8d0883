package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/devconnect/pkg/auth"
	"github.com/dkozyrev/devconnect/pkg/repository/memory"
	"github.com/dkozyrev/devconnect/pkg/security/jwt"
)

func newService(t *testing.T) (auth.AuthUseCase, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	gen := jwt.NewGenerator("test-secret", "devconnect", time.Hour)
	return auth.NewAuthService(repo, gen), repo
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Alice", reg.User.Name)
	assert.NotEmpty(t, reg.User.Avatar)
	assert.NotEqual(t, "secret1", reg.User.PasswordHash)

	login, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "a@x.com", "different")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLogin_InformationHiding(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, unknownEmailErr := svc.Login(ctx, "nobody@x.com", "secret1")
	_, wrongPasswordErr := svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, unknownEmailErr, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, auth.ErrInvalidCredentials)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

// Email lookup is an exact match: a case-variant email is a wrong credential
// even with the right password.
func TestLogin_EmailCaseSensitive(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "A@X.COM", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestTokenRoundTripThroughAuthenticator(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	subject, err := jwt.Parse(reg.Token, "test-secret", "devconnect")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.String(), subject)
}
