// Package refreshtokens stores the opaque refresh tokens issued on login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, token string) error
}
