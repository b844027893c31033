package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

func newDirSvc(repo *stubUserRepo) *DirectoryService {
	return NewDirectoryService(repo, zerolog.Nop())
}

func TestDirectoryService_Listings_StripsPrivateFields(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(domain.Listing{
		Name:         "Sarah Johnson",
		Email:        "sarah@example.com",
		Phone:        "+2348012345678",
		Whatsapp:     "+2348012345678",
		PasswordHash: "hash",
		Rating:       4.5,
	})
	svc := newDirSvc(repo)

	listings, err := svc.Listings(context.Background())
	if err != nil {
		t.Fatalf("listings failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	l := listings[0]
	if l.Email != "" || l.Phone != "" || l.Whatsapp != "" || l.PasswordHash != "" {
		t.Fatalf("private fields leaked: %+v", l)
	}
	if l.Name != "Sarah Johnson" || l.Rating != 4.5 {
		t.Fatalf("public fields lost: %+v", l)
	}
}

func TestDirectoryService_AddReview_RecalculatesRating(t *testing.T) {
	repo := newStubUserRepo()
	listing := repo.add(domain.Listing{
		Name:        "Sarah Johnson",
		Rating:      5.0,
		Reviews:     1,
		ReviewsList: []domain.Review{{Rating: 5, Name: "First", Date: "2026-01-01"}},
	})
	svc := newDirSvc(repo)

	rating, count, err := svc.AddReview(context.Background(), listing.ID, ports.ReviewInput{
		Rating: 4, Name: "Second", Comment: "solid work",
	})
	if err != nil {
		t.Fatalf("add review failed: %v", err)
	}
	if rating != 4.5 || count != 2 {
		t.Fatalf("expected rating 4.5 with 2 reviews, got %v with %d", rating, count)
	}

	stored := repo.users[listing.ID]
	if stored.Rating != 4.5 || stored.Reviews != 2 || len(stored.ReviewsList) != 2 {
		t.Fatalf("review not persisted: %+v", stored)
	}
	if stored.ReviewsList[1].Date == "" {
		t.Fatalf("expected a defaulted review date")
	}
}

func TestDirectoryService_AddReview_Validation(t *testing.T) {
	repo := newStubUserRepo()
	listing := repo.add(domain.Listing{Name: "Sarah"})
	svc := newDirSvc(repo)

	if _, _, err := svc.AddReview(context.Background(), listing.ID, ports.ReviewInput{Name: "x"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for zero rating, got %v", err)
	}
	if _, _, err := svc.AddReview(context.Background(), 999, ports.ReviewInput{Rating: 5, Name: "x"}); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestDirectoryService_UpdateProfile_EmptyIsNoop(t *testing.T) {
	repo := newStubUserRepo()
	listing := repo.add(domain.Listing{Name: "Sarah", State: "Lagos"})
	svc := newDirSvc(repo)

	if err := svc.UpdateProfile(context.Background(), listing.ID, ports.ListingUpdate{}); err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if repo.users[listing.ID].State != "Lagos" {
		t.Fatalf("no-op update mutated the account")
	}

	state := "Kano"
	if err := svc.UpdateProfile(context.Background(), listing.ID, ports.ListingUpdate{State: &state}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.users[listing.ID].State != "Kano" {
		t.Fatalf("update not applied: %+v", repo.users[listing.ID])
	}
}

func TestDirectoryService_Gallery_AddAndRemove(t *testing.T) {
	repo := newStubUserRepo()
	listing := repo.add(domain.Listing{Name: "Sarah", Gallery: []string{"a.jpg"}})
	svc := newDirSvc(repo)

	gallery, err := svc.AddGalleryItems(context.Background(), listing.ID, []string{"b.jpg", "c.mp4"})
	if err != nil {
		t.Fatalf("add gallery failed: %v", err)
	}
	if len(gallery) != 3 {
		t.Fatalf("expected 3 items, got %v", gallery)
	}

	gallery, err = svc.RemoveGalleryItem(context.Background(), listing.ID, "b.jpg")
	if err != nil {
		t.Fatalf("remove gallery failed: %v", err)
	}
	if len(gallery) != 2 || gallery[0] != "a.jpg" || gallery[1] != "c.mp4" {
		t.Fatalf("unexpected gallery after removal: %v", gallery)
	}

	// Removing an absent item leaves the gallery unchanged.
	gallery, err = svc.RemoveGalleryItem(context.Background(), listing.ID, "nope.jpg")
	if err != nil {
		t.Fatalf("remove of absent item failed: %v", err)
	}
	if len(gallery) != 2 {
		t.Fatalf("absent removal changed the gallery: %v", gallery)
	}
}

func TestDirectoryService_DeleteUser_AdminPolicy(t *testing.T) {
	repo := newStubUserRepo()
	admin := repo.add(domain.Listing{Name: "Admin", Email: domain.AdminEmail})
	regular := repo.add(domain.Listing{Name: "Sarah", Email: "sarah@example.com"})
	victim := repo.add(domain.Listing{Name: "Target", Email: "target@example.com"})
	svc := newDirSvc(repo)

	if err := svc.DeleteUser(context.Background(), regular.ID, victim.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin actor, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), admin.ID, victim.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, ok := repo.users[victim.ID]; ok {
		t.Fatalf("target account still present")
	}
}
