// Package remote implements the remote-API DataManager backend: a thin HTTP
// client over the SparkConnect REST surface. Session state lives server-side
// behind a cookie; the client only carries the cookie jar.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// ErrInvalidResponse replaces raw JSON parse failures on API responses.
var ErrInvalidResponse = errors.New("invalid server response")

const defaultTimeout = 30 * time.Second

// Client is the remote-API backend. It implements ports.DataManager plus the
// remote-only MediaUploader and GoogleAuthenticator extensions.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ ports.DataManager = (*Client)(nil)
var _ ports.MediaUploader = (*Client)(nil)
var _ ports.GoogleAuthenticator = (*Client)(nil)

// New builds a Client targeting baseURL (no trailing slash). The cookie jar
// holds the server session cookie for the lifetime of the client.
func New(baseURL string, log zerolog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: defaultTimeout},
		log:     log,
	}, nil
}

// ResolveBaseURL mirrors the page-origin detection of the web client: local
// development hosts target the fixed dev port over plain HTTP, anything else
// the same host over HTTPS on the default port.
func ResolveBaseURL(hostname string) string {
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return "http://" + hostname + ":5000"
	}
	return "https://" + hostname
}

// ListAll fetches the directory. It never fails: transport or decode errors
// degrade to an empty result with degraded set, keeping list pages renderable.
func (c *Client) ListAll(ctx context.Context) ([]domain.Listing, bool) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/electricians", nil)
	if err != nil || status != http.StatusOK {
		c.log.Warn().Err(err).Int("status", status).Msg("remote: listing fetch degraded to empty")
		return []domain.Listing{}, true
	}
	var listings []domain.Listing
	if err := json.Unmarshal(body, &listings); err != nil {
		c.log.Warn().Err(err).Msg("remote: listing payload unreadable, degraded to empty")
		return []domain.Listing{}, true
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, false
}

// GetByID filters the full directory client-side; the API exposes no per-id
// endpoint.
func (c *Client) GetByID(ctx context.Context, id int) (*domain.Listing, error) {
	listings, _ := c.ListAll(ctx)
	for i := range listings {
		if listings[i].ID == id {
			l := listings[i]
			return &l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// Create registers a new account without establishing a session. The server
// acknowledges without echoing the stored entity, so the returned listing
// carries the submitted fields and no id; use Signup when a session is wanted.
func (c *Client) Create(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	if err := c.register(ctx, input); err != nil {
		return nil, err
	}
	return &domain.Listing{
		Name:        input.Name,
		Specialty:   input.Specialty,
		Location:    input.Location,
		State:       input.State,
		Phone:       input.Phone,
		Whatsapp:    input.Whatsapp,
		Description: input.Description,
		Image:       input.Image,
		Email:       input.Email,
	}, nil
}

// Update sends the partial profile update for the session user and returns
// the refreshed session user. The id argument is advisory; the server only
// ever updates the authenticated account.
func (c *Client) Update(ctx context.Context, id int, update ports.ListingUpdate) (*domain.Listing, error) {
	status, body, err := c.doJSON(ctx, http.MethodPut, "/api/user/update", update)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnauthorized:
		return nil, domain.ErrNoSession
	case status == http.StatusNotFound:
		return nil, domain.ErrListingNotFound
	case status < 200 || status > 299:
		return nil, apiError(status, body, fmt.Sprintf("update failed with status %d", status))
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoSession
	}
	return user, nil
}

// Delete removes a user account by id through the admin endpoint. The server
// enforces that the caller is the administrator.
func (c *Client) Delete(ctx context.Context, id int) error {
	status, body, err := c.do(ctx, http.MethodDelete, "/api/admin/users/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return apiError(status, body, "failed to delete user")
	}
	return nil
}

// Login posts credentials; success installs the server session cookie and
// returns the server's user payload.
func (c *Client) Login(ctx context.Context, identifier, password string) (*domain.Listing, error) {
	payload := map[string]string{"email": identifier, "password": password}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", payload)
	if err != nil {
		return nil, err
	}
	var result struct {
		User  *domain.Listing `json:"user"`
		Error string          `json:"error"`
	}
	if err := unmarshalBody(body, &result); err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, apiError(status, body, fmt.Sprintf("login failed with status %d", status))
	}
	if result.User != nil {
		result.User.Admin = result.User.Email == domain.AdminEmail
	}
	return result.User, nil
}

// Signup registers the account and immediately logs in with the same
// credentials; registration alone does not authenticate.
func (c *Client) Signup(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	if err := c.register(ctx, input); err != nil {
		return nil, err
	}
	return c.Login(ctx, input.Email, input.Password)
}

// Logout invalidates the server session.
func (c *Client) Logout(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

// CurrentUser queries the who-am-I endpoint. No valid session yields
// (nil, nil), never an error.
func (c *Client) CurrentUser(ctx context.Context) (*domain.Listing, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil || status != http.StatusOK {
		return nil, nil
	}
	var user *domain.Listing
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, nil
	}
	if user != nil {
		user.Admin = user.Email == domain.AdminEmail
	}
	return user, nil
}

// IsAdmin reports whether the session user is the administrative account.
func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil || user == nil {
		return false, err
	}
	return user.Admin, nil
}

// GoogleLogin posts a provider credential and returns the server response
// verbatim.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (json.RawMessage, error) {
	status, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/google", map[string]string{"credential": credential})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, ErrInvalidResponse
	}
	if status < 200 || status > 299 {
		return nil, apiError(status, body, fmt.Sprintf("google login failed with status %d", status))
	}
	return json.RawMessage(body), nil
}

func (c *Client) register(ctx context.Context, input ports.CreateListingInput) error {
	status, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", input)
	if err != nil {
		return err
	}
	if len(body) > 0 && !json.Valid(body) {
		return ErrInvalidResponse
	}
	if status < 200 || status > 299 {
		return apiError(status, body, fmt.Sprintf("signup failed with status %d", status))
	}
	return nil
}

// --- transport helpers ---

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// unmarshalBody decodes a JSON body, mapping parse failures to
// ErrInvalidResponse instead of leaking raw decoder errors.
func unmarshalBody(body []byte, v any) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrInvalidResponse
	}
	return nil
}

// apiError extracts the server's {"error": …} message, falling back to a
// generic human-readable message.
func apiError(_ int, body []byte, fallback string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	return errors.New(fallback)
}
