package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/api/metrics"
	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// DirectoryService implements the public directory and profile use cases.
type DirectoryService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewDirectoryService(repo ports.UserRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, log: log}
}

// Listings returns the public directory view: every account, stripped of
// credentials and contact details.
func (s *DirectoryService) Listings(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]domain.Listing, len(listings))
	for i, l := range listings {
		public[i] = l.Public()
	}
	return public, nil
}

func (s *DirectoryService) Listing(ctx context.Context, id int) (*domain.Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := l.Public()
	return &public, nil
}

// UpdateProfile applies a whitelisted partial update to the caller's own
// account. An empty update is a no-op, not an error.
func (s *DirectoryService) UpdateProfile(ctx context.Context, userID int, update ports.ListingUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	if _, err := s.repo.Update(ctx, userID, update); err != nil {
		return err
	}
	s.log.Info().Int("user_id", userID).Msg("profile updated")
	return nil
}

// AddReview appends a review to the listing and recalculates its average
// rating (one decimal) and review count.
func (s *DirectoryService) AddReview(ctx context.Context, listingID int, input ports.ReviewInput) (float64, int, error) {
	if input.Rating == 0 || input.Name == "" {
		return 0, 0, domain.ErrMissingFields
	}

	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return 0, 0, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	reviews := append(listing.ReviewsList, domain.Review{
		Rating:  input.Rating,
		Name:    input.Name,
		Comment: input.Comment,
		Date:    date,
	})
	rating, count := domain.RecalculateRating(reviews)

	if err := s.repo.SetReviews(ctx, listingID, reviews, rating, count); err != nil {
		return 0, 0, err
	}
	metrics.ReviewsTotal.Inc()
	return rating, count, nil
}

// AddGalleryItems appends uploaded reference paths to the user's gallery and
// returns the full gallery.
func (s *DirectoryService) AddGalleryItems(ctx context.Context, userID int, urls []string) ([]string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	gallery := append(user.Gallery, urls...)
	if err := s.repo.SetGallery(ctx, userID, gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

// RemoveGalleryItem drops the first occurrence of url from the user's
// gallery. Removing an absent item returns the gallery unchanged.
func (s *DirectoryService) RemoveGalleryItem(ctx context.Context, userID int, url string) ([]string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed := false
	gallery := make([]string, 0, len(user.Gallery))
	for _, item := range user.Gallery {
		if !removed && item == url {
			removed = true
			continue
		}
		gallery = append(gallery, item)
	}
	if !removed {
		return user.Gallery, nil
	}

	if err := s.repo.SetGallery(ctx, userID, gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

// DeleteUser removes targetID on behalf of actorID. Only the administrative
// account may delete users, and never itself.
func (s *DirectoryService) DeleteUser(ctx context.Context, actorID, targetID int) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return domain.ErrForbidden
	}
	if actor.Email != domain.AdminEmail {
		return domain.ErrForbidden
	}
	if actorID == targetID {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Int("user_id", targetID).Int("actor_id", actorID).Msg("user deleted by admin")
	return nil
}
