package ports

import (
	"context"
	"io"

	"github.com/sparkconnect/directory/internal/core/domain"
)

// RegisterInput carries a registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Specialty   string
	Location    string
	State       string
	Phone       string
	Whatsapp    string
	Description string
}

// ReviewInput is a customer review submission.
type ReviewInput struct {
	Rating  float64
	Name    string
	Comment string
	Date    string
}

// AuthService implements account registration and authentication use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Listing, error)
	Login(ctx context.Context, identifier, password string) (*domain.Listing, error)
	// GoogleLogin verifies a provider credential and provisions an account
	// on first sight. created reports whether a new account was made.
	GoogleLogin(ctx context.Context, credential string) (user *domain.Listing, created bool, err error)
	CurrentUser(ctx context.Context, userID int) (*domain.Listing, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// DirectoryService implements listing directory use cases.
type DirectoryService interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
	Listing(ctx context.Context, id int) (*domain.Listing, error)
	UpdateProfile(ctx context.Context, userID int, update ListingUpdate) error
	AddReview(ctx context.Context, listingID int, input ReviewInput) (rating float64, count int, err error)
	AddGalleryItems(ctx context.Context, userID int, urls []string) ([]string, error)
	RemoveGalleryItem(ctx context.Context, userID int, url string) ([]string, error)
	// DeleteUser removes targetID on behalf of actorID; the actor must be
	// the admin account and may not delete itself.
	DeleteUser(ctx context.Context, actorID, targetID int) error
}

// MediaService stores uploaded files and returns their web path.
type MediaService interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// SessionStore keeps server-side session state keyed by opaque session ids.
type SessionStore interface {
	Create(ctx context.Context, userID int) (sessionID string, err error)
	// UserID resolves a session id; an unknown or expired id yields
	// domain.ErrNoSession.
	UserID(ctx context.Context, sessionID string) (int, error)
	Delete(ctx context.Context, sessionID string) error
}

// MailMessage is an outbound email.
type MailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers mail. Implementations may queue and send asynchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// GoogleIdentity is the verified subject of a Google ID token.
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
}

// CredentialVerifier validates third-party identity tokens.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}
