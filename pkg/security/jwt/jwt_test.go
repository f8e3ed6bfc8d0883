package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/devconnect/pkg/auth"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	user := auth.User{ID: uuid.New()}
	gen := NewGenerator("super-secret", "devconnect", time.Hour)

	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	subject, err := Parse(token, "super-secret", "devconnect")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("super-secret", "devconnect", -time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "super-secret", "devconnect")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("right-secret", "devconnect", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "wrong-secret", "devconnect")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongIssuer(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("super-secret", "someone-else", time.Hour)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "super-secret", "devconnect")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_EmptyToken(t *testing.T) {
	t.Parallel()

	_, err := Parse("", "super-secret", "devconnect")
	assert.ErrorIs(t, err, ErrNoToken)
}
