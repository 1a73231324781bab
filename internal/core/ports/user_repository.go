package ports

import (
	"context"

	"github.com/idance/opstools/internal/core/domain"
)

// UserRepository exposes the user-collection operations the repair tooling
// needs.
type UserRepository interface {
	// UsernameExists reports whether any stored user already holds username.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// FindMissingUsernames returns every user whose username is null,
	// absent, or whose profile subdocument is missing entirely.
	FindMissingUsernames(ctx context.Context) ([]domain.User, error)
	// SetUsername writes username onto the identified user and stamps
	// updatedAt. The returned bool reports whether a document was modified.
	SetUsername(ctx context.Context, id, username string) (bool, error)
}
