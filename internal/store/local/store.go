// Package local implements the local-simulated backend: the full DataManager
// contract persisted in an embedded SQLite key-value store, with no server
// involved. Authentication is a naive name lookup and passwords are ignored.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// Storage keys mirror the browser profile this backend simulates: one key for
// the listing collection, one for the session user, and a one-time flag
// marking that seed restoration has run.
const (
	collectionKey  = "sparkconnect_electricians"
	sessionKey     = "sparkconnect_current_user"
	restoreFlagKey = "sparkconnect_restored_v2"
)

// Store is the local-simulated DataManager backend.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ ports.DataManager = (*Store)(nil)

// Open opens (creating if needed) the backing SQLite file and runs the seed
// merge. Seeding is part of the explicit open lifecycle; reopening an already
// seeded non-empty store performs no merge.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store schema: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.seed(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// seed merges the built-in default listings into the stored collection. A
// default is skipped when a listing with the same name already exists; if its
// predeclared id collides with an existing listing, it is reassigned to
// max id + 1. Runs once per store (restore flag), and again whenever the
// collection is empty. Idempotent across repeated opens.
func (s *Store) seed(ctx context.Context) error {
	listings, err := s.readCollection(ctx)
	if err != nil {
		// A corrupt collection is treated as empty rather than fatal.
		s.log.Warn().Err(err).Msg("local store: collection unreadable, reseeding")
		listings = nil
	}

	shouldRestore := false
	if _, ok, err := s.get(ctx, restoreFlagKey); err != nil {
		return err
	} else if !ok {
		shouldRestore = true
		if err := s.set(ctx, restoreFlagKey, "true"); err != nil {
			return err
		}
	}

	modified := false
	if shouldRestore || len(listings) == 0 {
		for _, def := range domain.DefaultListings() {
			exists := false
			for _, cur := range listings {
				if cur.Name == def.Name {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			for _, cur := range listings {
				if cur.ID == def.ID {
					def.ID = maxID(listings) + 1
					break
				}
			}
			listings = append(listings, def)
			modified = true
		}
	}

	if modified || len(listings) == 0 {
		if err := s.writeCollection(ctx, listings); err != nil {
			return err
		}
		s.log.Info().Int("listings", len(listings)).Msg("local store: seed merge persisted")
	}
	return nil
}

// ListAll returns every stored listing. It never fails: a read or decode
// error degrades to an empty result, flagged so callers can tell the
// difference from a genuinely empty directory.
func (s *Store) ListAll(ctx context.Context) ([]domain.Listing, bool) {
	listings, err := s.readCollection(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("local store: list degraded to empty")
		return []domain.Listing{}, true
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, false
}

// GetByID returns the listing with the given id, or domain.ErrListingNotFound.
func (s *Store) GetByID(ctx context.Context, id int) (*domain.Listing, error) {
	listings, err := s.readCollection(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID == id {
			l := listings[i]
			return &l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// Create inserts a new listing with id max+1 (1 when empty). Rating, review
// count and gallery are forced to their zero values regardless of input, and
// any supplied password is ignored.
func (s *Store) Create(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	listings, err := s.readCollection(ctx)
	if err != nil {
		return nil, err
	}

	image := input.Image
	if image == "" {
		image = domain.PlaceholderImage
	}
	created := domain.Listing{
		ID:          maxID(listings) + 1,
		Name:        input.Name,
		Specialty:   input.Specialty,
		Location:    input.Location,
		State:       input.State,
		Phone:       input.Phone,
		Whatsapp:    input.Whatsapp,
		Description: input.Description,
		Image:       image,
		Email:       input.Email,
		Rating:      0,
		Reviews:     0,
		Gallery:     []string{},
	}

	listings = append(listings, created)
	if err := s.writeCollection(ctx, listings); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update shallow-merges the set fields into the stored listing. A missing id
// returns domain.ErrListingNotFound and leaves the collection unmodified.
func (s *Store) Update(ctx context.Context, id int, update ports.ListingUpdate) (*domain.Listing, error) {
	listings, err := s.readCollection(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID != id {
			continue
		}
		update.Apply(&listings[i])
		if err := s.writeCollection(ctx, listings); err != nil {
			return nil, err
		}
		// Keep the session copy in sync when the session user edits
		// their own profile.
		if cur, _ := s.CurrentUser(ctx); cur != nil && cur.ID == id {
			updated := listings[i]
			updated.Admin = isAdminName(updated.Name)
			if err := s.setSession(ctx, updated); err != nil {
				return nil, err
			}
		}
		l := listings[i]
		return &l, nil
	}
	return nil, domain.ErrListingNotFound
}

// Delete removes the listing with the given id. Deleting an absent id is a
// no-op. When the deleted listing is the session user, the session is
// cleared.
func (s *Store) Delete(ctx context.Context, id int) error {
	listings, err := s.readCollection(ctx)
	if err != nil {
		return err
	}
	kept := listings[:0]
	for _, l := range listings {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if err := s.writeCollection(ctx, kept); err != nil {
		return err
	}

	if cur, err := s.CurrentUser(ctx); err == nil && cur != nil && cur.ID == id {
		return s.Logout(ctx)
	}
	return nil
}

// Login matches identifier against listing names, case-insensitively. The
// password is accepted and ignored. A match becomes the session user; no
// match returns domain.ErrListingNotFound and leaves the session unset.
func (s *Store) Login(ctx context.Context, identifier, _ string) (*domain.Listing, error) {
	listings, err := s.readCollection(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if strings.EqualFold(listings[i].Name, identifier) {
			user := listings[i]
			user.Admin = isAdminName(user.Name)
			if err := s.setSession(ctx, user); err != nil {
				return nil, err
			}
			return &user, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// Signup creates the listing and immediately makes it the session user.
func (s *Store) Signup(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	created, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	user := *created
	user.Admin = isAdminName(user.Name)
	if err := s.setSession(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session key.
func (s *Store) Logout(ctx context.Context) error {
	return s.del(ctx, sessionKey)
}

// CurrentUser returns the cached session user, or (nil, nil) when none.
func (s *Store) CurrentUser(ctx context.Context) (*domain.Listing, error) {
	raw, ok, err := s.get(ctx, sessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var user domain.Listing
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

// IsAdmin reports whether the session user carries the admin flag.
func (s *Store) IsAdmin(ctx context.Context) (bool, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return false, err
	}
	return user.Admin, nil
}

func (s *Store) setSession(ctx context.Context, user domain.Listing) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.set(ctx, sessionKey, string(raw))
}

func (s *Store) readCollection(ctx context.Context) ([]domain.Listing, error) {
	raw, ok, err := s.get(ctx, collectionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var listings []domain.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return listings, nil
}

func (s *Store) writeCollection(ctx context.Context, listings []domain.Listing) error {
	if listings == nil {
		listings = []domain.Listing{}
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return s.set(ctx, collectionKey, string(raw))
}

func maxID(listings []domain.Listing) int {
	max := 0
	for _, l := range listings {
		if l.ID > max {
			max = l.ID
		}
	}
	return max
}

func isAdminName(name string) bool {
	return strings.EqualFold(name, domain.AdminName)
}
