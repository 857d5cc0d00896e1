package auth

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Authenticator registers users and verifies their credentials.
// The credential format depends on the implementation.
type Authenticator interface {
	// Register creates a new user account. Fails with ErrEmailExists when the
	// email is taken and ErrWeakPassword when the credential is rejected.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate returns the user owning email if credential matches,
	// ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
