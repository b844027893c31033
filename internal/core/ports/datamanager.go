package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sparkconnect/directory/internal/core/domain"
)

// ListingStore defines the entity operations both backends implement.
//
// Not-found is a normal outcome, signalled with domain.ErrListingNotFound so
// callers can distinguish it from transport failures. ListAll never fails:
// on any transport or decode error it returns an empty slice with degraded
// set to true, so callers can render "no results" and still observe that the
// emptiness was a fallback.
type ListingStore interface {
	ListAll(ctx context.Context) (listings []domain.Listing, degraded bool)
	GetByID(ctx context.Context, id int) (*domain.Listing, error)
	Create(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
	Update(ctx context.Context, id int, update ListingUpdate) (*domain.Listing, error)
	// Delete is idempotent; removing an absent id is not an error. The
	// local backend deletes self-service listings and clears the session
	// when the deleted listing is the session user. The remote backend
	// maps this to the admin user-deletion endpoint.
	Delete(ctx context.Context, id int) error
}

// SessionService manages the current user's session lifecycle.
//
// The local backend matches identifier against listing names and ignores the
// password; the remote backend posts credentials and relies on the server
// session cookie. CurrentUser returns (nil, nil) when no session exists.
type SessionService interface {
	Login(ctx context.Context, identifier, password string) (*domain.Listing, error)
	Signup(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.Listing, error)
	// IsAdmin reads the Admin flag the active backend derived for the
	// session user. No session means false.
	IsAdmin(ctx context.Context) (bool, error)
}

// DataManager is the composed client-side abstraction pages talk to. Backends
// are selected at composition time, never per call site.
type DataManager interface {
	ListingStore
	SessionService
}

// MediaUploader uploads a file and returns the server-assigned reference
// path. Implemented by the remote backend only.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// GoogleAuthenticator exchanges a third-party identity token for a session.
// The provider payload is returned verbatim. Remote backend only.
type GoogleAuthenticator interface {
	GoogleLogin(ctx context.Context, credential string) (json.RawMessage, error)
}

// CreateListingInput carries caller-supplied fields for Create and Signup.
// Rating, Reviews and Gallery are accepted but overridden with zero values by
// the local backend; the server is authoritative for the remote backend.
type CreateListingInput struct {
	Name        string   `json:"name"`
	Specialty   string   `json:"specialty,omitempty"`
	Location    string   `json:"location,omitempty"`
	State       string   `json:"state,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Whatsapp    string   `json:"whatsapp,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Email       string   `json:"email,omitempty"`
	Password    string   `json:"password,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
}

// ListingUpdate is the explicit schema of mutable listing fields. Nil fields
// are left untouched (shallow merge); anything outside this set cannot be
// expressed, so malformed payloads are rejected at the boundary instead of
// silently merged. ID, rating and review counts are never caller-mutable.
type ListingUpdate struct {
	Name        *string `json:"name,omitempty"`
	Specialty   *string `json:"specialty,omitempty"`
	Location    *string `json:"location,omitempty"`
	State       *string `json:"state,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Whatsapp    *string `json:"whatsapp,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (u ListingUpdate) IsEmpty() bool {
	return u.Name == nil && u.Specialty == nil && u.Location == nil &&
		u.State == nil && u.Phone == nil && u.Whatsapp == nil &&
		u.Description == nil && u.Image == nil && u.Email == nil
}

// Apply merges the set fields into l, preserving everything else.
func (u ListingUpdate) Apply(l *domain.Listing) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Specialty != nil {
		l.Specialty = *u.Specialty
	}
	if u.Location != nil {
		l.Location = *u.Location
	}
	if u.State != nil {
		l.State = *u.State
	}
	if u.Phone != nil {
		l.Phone = *u.Phone
	}
	if u.Whatsapp != nil {
		l.Whatsapp = *u.Whatsapp
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Image != nil {
		l.Image = *u.Image
	}
	if u.Email != nil {
		l.Email = *u.Email
	}
}
