package domain

import (
	"errors"
	"strings"
)

// PlaceholderImage is the sentinel used when a listing has no profile picture.
const PlaceholderImage = "assets/images/profile_placeholder.jpg"

// AdminEmail identifies the administrative account on the remote backend.
const AdminEmail = "admin@sparkconnect.com"

// AdminName identifies the administrative account on the local-simulated
// backend, matched case-insensitively against the session user's name.
const AdminName = "admin"

var ErrListingNotFound = errors.New("listing not found")
var ErrNoSession = errors.New("no active session")
var ErrEmailExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("admin access required")
var ErrSelfDelete = errors.New("cannot delete your own account")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
var ErrInvalidFileType = errors.New("invalid file type")
var ErrMissingFields = errors.New("missing required fields")

// Listing is the core directory entity: a professional profile that doubles
// as a user account when email/password are present.
type Listing struct {
	ID           int      `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name"`
	Specialty    string   `json:"specialty" bson:"specialty"`
	Location     string   `json:"location" bson:"location"`
	State        string   `json:"state" bson:"state"`
	Phone        string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Whatsapp     string   `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Rating       float64  `json:"rating" bson:"rating"`
	Reviews      int      `json:"reviews" bson:"reviews"`
	Image        string   `json:"image" bson:"image"`
	Description  string   `json:"description" bson:"description"`
	Gallery      []string `json:"gallery" bson:"gallery"`
	Email        string   `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string   `json:"-" bson:"password_hash,omitempty"`
	ReviewsList  []Review `json:"reviewsList,omitempty" bson:"reviews_data,omitempty"`

	// Admin is derived by the active backend (name policy locally, email
	// policy remotely) and never persisted.
	Admin bool `json:"admin,omitempty" bson:"-"`
}

// Public strips credentials and other private material for directory views.
func (l Listing) Public() Listing {
	l.PasswordHash = ""
	l.Email = ""
	l.Phone = ""
	l.Whatsapp = ""
	return l
}

// Initials returns the two-letter monogram shown when no profile picture is
// available. Falls back to "SC" for empty names.
func (l Listing) Initials() string {
	return InitialsOf(l.Name)
}

// InitialsOf derives a monogram from a display name: first letters of the
// first two words, or the first two letters of a single word.
func InitialsOf(name string) string {
	fields := strings.Fields(name)
	switch {
	case len(fields) >= 2:
		return strings.ToUpper(firstRune(fields[0]) + firstRune(fields[1]))
	case len(fields) == 1:
		r := []rune(fields[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		return "SC"
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
