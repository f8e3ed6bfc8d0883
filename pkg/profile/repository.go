package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Repository abstracts profile persistence. A user has at most one profile,
// keyed by user id.
type Repository interface {
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
