package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

type stubDirectoryService struct {
	listingsFn  func(ctx context.Context) ([]domain.Listing, error)
	listingFn   func(ctx context.Context, id int) (*domain.Listing, error)
	updateFn    func(ctx context.Context, userID int, update ports.ListingUpdate) error
	reviewFn    func(ctx context.Context, listingID int, input ports.ReviewInput) (float64, int, error)
	addGalFn    func(ctx context.Context, userID int, urls []string) ([]string, error)
	removeGalFn func(ctx context.Context, userID int, url string) ([]string, error)
	deleteFn    func(ctx context.Context, actorID, targetID int) error
}

func (s *stubDirectoryService) Listings(ctx context.Context) ([]domain.Listing, error) {
	return s.listingsFn(ctx)
}

func (s *stubDirectoryService) Listing(ctx context.Context, id int) (*domain.Listing, error) {
	return s.listingFn(ctx, id)
}

func (s *stubDirectoryService) UpdateProfile(ctx context.Context, userID int, update ports.ListingUpdate) error {
	return s.updateFn(ctx, userID, update)
}

func (s *stubDirectoryService) AddReview(ctx context.Context, listingID int, input ports.ReviewInput) (float64, int, error) {
	return s.reviewFn(ctx, listingID, input)
}

func (s *stubDirectoryService) AddGalleryItems(ctx context.Context, userID int, urls []string) ([]string, error) {
	return s.addGalFn(ctx, userID, urls)
}

func (s *stubDirectoryService) RemoveGalleryItem(ctx context.Context, userID int, url string) ([]string, error) {
	return s.removeGalFn(ctx, userID, url)
}

func (s *stubDirectoryService) DeleteUser(ctx context.Context, actorID, targetID int) error {
	return s.deleteFn(ctx, actorID, targetID)
}

func TestDirectoryHandler_List(t *testing.T) {
	stub := &stubDirectoryService{
		listingsFn: func(_ context.Context) ([]domain.Listing, error) {
			return []domain.Listing{
				{ID: 1, Name: "Sarah Johnson", Rating: 4.9},
				{ID: 2, Name: "Michael Chen", Rating: 4.8},
			}, nil
		},
	}
	h := NewDirectoryHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/electricians", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var listings []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listings); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(listings) != 2 || listings[0]["name"] != "Sarah Johnson" {
		t.Fatalf("unexpected payload: %+v", listings)
	}
}

func TestDirectoryHandler_Get_ReturnsServiceViewVerbatim(t *testing.T) {
	stub := &stubDirectoryService{
		listingFn: func(_ context.Context, id int) (*domain.Listing, error) {
			if id != 7 {
				t.Fatalf("unexpected id %d", id)
			}
			return &domain.Listing{ID: 7, Name: "Emily Carter", Phone: "0700-000-0000"}, nil
		},
	}
	h := NewDirectoryHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/electricians/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var listing map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// Field stripping is the service's job; the handler must not re-filter.
	if listing["name"] != "Emily Carter" || listing["phone"] != "0700-000-0000" {
		t.Fatalf("unexpected payload: %+v", listing)
	}
}

func TestDirectoryHandler_Get_InvalidID(t *testing.T) {
	h := NewDirectoryHandler(&stubDirectoryService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/electricians/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestDirectoryHandler_AddReview(t *testing.T) {
	stub := &stubDirectoryService{
		reviewFn: func(_ context.Context, listingID int, input ports.ReviewInput) (float64, int, error) {
			if listingID != 3 || input.Rating != 5 || input.Name != "Adaeze" {
				t.Fatalf("unexpected args: %d %+v", listingID, input)
			}
			return 4.7, 12, nil
		},
	}
	h := NewDirectoryHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/electricians/3/review",
		`{"rating":5,"name":"Adaeze","comment":"great work"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.AddReview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["rating"] != 4.7 || resp["reviews"] != float64(12) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestDirectoryHandler_AddReview_RatingOutOfRange(t *testing.T) {
	h := NewDirectoryHandler(&stubDirectoryService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/electricians/3/review",
		`{"rating":9,"name":"Adaeze"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.AddReview(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
