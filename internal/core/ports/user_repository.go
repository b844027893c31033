package ports

import (
	"context"
	"time"

	"github.com/sparkconnect/directory/internal/core/domain"
)

// UserRepository defines server-side persistence for listing accounts.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.Listing, error)
	FindByID(ctx context.Context, id int) (*domain.Listing, error)
	// FindByIdentifier matches email or display name, case-insensitively.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Listing, error)
	FindByEmail(ctx context.Context, email string) (*domain.Listing, error)
	// Create assigns a server-side id and returns the stored listing.
	Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, id int, update ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, id int) error
	SetReviews(ctx context.Context, id int, reviews []domain.Review, rating float64, count int) error
	SetGallery(ctx context.Context, id int, gallery []string) error
	SetResetToken(ctx context.Context, id int, token string, expiry time.Time) error
	ResetToken(ctx context.Context, id int) (token string, expiry time.Time, err error)
	// UpdatePassword stores a new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, id int, hash string) error
}
