package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

// mockAPI is a minimal in-memory rendition of the SparkConnect REST surface:
// register stores the account, login issues a session cookie, me resolves it.
type mockAPI struct {
	mux      *http.ServeMux
	users    map[string]map[string]any // email -> payload
	sessions map[string]string         // session id -> email
	nextID   int
}

func newMockAPI() *mockAPI {
	m := &mockAPI{
		mux:      http.NewServeMux(),
		users:    make(map[string]map[string]any),
		sessions: make(map[string]string),
		nextID:   1,
	}
	m.mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		email, _ := body["email"].(string)
		if email == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing required fields"})
			return
		}
		if _, exists := m.users[email]; exists {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already exists"})
			return
		}
		body["id"] = m.nextID
		m.nextID++
		m.users[email] = body
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "user created"})
	})
	m.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		user, ok := m.users[creds.Email]
		if !ok || user["password"] != creds.Password {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		sid := "sid-" + creds.Email
		m.sessions[sid] = creds.Email
		http.SetCookie(w, &http.Cookie{Name: "sc_session", Value: sid, Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"user": user})
	})
	m.mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sc_session")
		if err != nil {
			_, _ = w.Write([]byte("null"))
			return
		}
		email, ok := m.sessions[cookie.Value]
		if !ok {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(m.users[email])
	})
	return m
}

func (m *mockAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) { m.mux.ServeHTTP(w, r) }

func TestListAll_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/electricians" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Sarah Johnson"},{"id":2,"name":"Michael Chen"}]`))
	}))

	listings, degraded := c.ListAll(context.Background())
	if degraded {
		t.Fatalf("unexpected degraded result")
	}
	if len(listings) != 2 || listings[0].Name != "Sarah Johnson" {
		t.Fatalf("unexpected listings: %+v", listings)
	}
}

func TestListAll_DegradesOnServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	listings, degraded := c.ListAll(context.Background())
	if !degraded {
		t.Fatalf("expected degraded flag on server error")
	}
	if len(listings) != 0 {
		t.Fatalf("expected empty fallback, got %+v", listings)
	}
}

func TestListAll_DegradesOnMalformedBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))

	listings, degraded := c.ListAll(context.Background())
	if !degraded || len(listings) != 0 {
		t.Fatalf("expected degraded empty result, got %v %+v", degraded, listings)
	}
}

func TestGetByID_NotFoundIsSignal(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Sarah Johnson"}]`))
	}))

	if _, err := c.GetByID(context.Background(), 42); err != domain.ErrListingNotFound {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestSignup_RegistersThenLogsIn(t *testing.T) {
	api := newMockAPI()
	c := newTestClient(t, api)

	user, err := c.Signup(context.Background(), ports.CreateListingInput{
		Name:     "Ada",
		Email:    "a@b.com",
		Password: "x",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user == nil || user.Email != "a@b.com" {
		t.Fatalf("expected session user a@b.com, got %+v", user)
	}

	// Session cookie must now resolve the current user.
	cur, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if cur == nil || cur.Email != "a@b.com" {
		t.Fatalf("expected session to persist via cookie, got %+v", cur)
	}
}

func TestCreate_DoesNotAuthenticate(t *testing.T) {
	api := newMockAPI()
	c := newTestClient(t, api)

	created, err := c.Create(context.Background(), ports.CreateListingInput{
		Name:     "Ada",
		Email:    "a@b.com",
		Password: "x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil || created.Email != "a@b.com" {
		t.Fatalf("unexpected created listing: %+v", created)
	}

	// Registering alone must leave the cookie jar without a session.
	cur, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if cur != nil {
		t.Fatalf("register must not authenticate, got session user %+v", cur)
	}
}

func TestLogin_SurfacesServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))

	_, err := c.Login(context.Background(), "a@b.com", "bad")
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("expected server error message, got %v", err)
	}
}

func TestLogin_MalformedBodyIsInvalidResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))

	if _, err := c.Login(context.Background(), "a@b.com", "x"); err != ErrInvalidResponse {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestCurrentUser_NoSessionIsNil(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))

	user, err := c.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got %+v (%v)", user, err)
	}
}

func TestIsAdmin_EmailPolicy(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"name":"Admin","email":"admin@sparkconnect.com"}`))
	}))

	admin, err := c.IsAdmin(context.Background())
	if err != nil || !admin {
		t.Fatalf("expected admin for administrative email, got %v (%v)", admin, err)
	}
}

func TestUpdate_UnauthorizedIsNoSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))

	spec := "Solar"
	if _, err := c.Update(context.Background(), 1, ports.ListingUpdate{Specialty: &spec}); err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestUpdate_SuccessReturnsRefreshedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/user/update", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("server got undecodable update: %v", err)
		}
		if len(body) != 1 || body["specialty"] != "Solar" {
			t.Fatalf("only set fields should be sent, got %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"name":"Sarah Johnson","specialty":"Solar"}`))
	})
	c := newTestClient(t, mux)

	spec := "Solar"
	user, err := c.Update(context.Background(), 1, ports.ListingUpdate{Specialty: &spec})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Specialty != "Solar" || user.Name != "Sarah Johnson" {
		t.Fatalf("unexpected refreshed user: %+v", user)
	}
}

func TestDelete_SurfacesServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/admin/users/7" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Admin access required"}`))
	}))

	err := c.Delete(context.Background(), 7)
	if err == nil || err.Error() != "Admin access required" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestDelete_FallbackMessageWithoutBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.Delete(context.Background(), 7)
	if err == nil || err.Error() != "failed to delete user" {
		t.Fatalf("expected generic fallback, got %v", err)
	}
}

func TestGoogleLogin_ReturnsPayloadVerbatim(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["credential"] != "tok-123" {
			t.Fatalf("unexpected credential %q", body["credential"])
		}
		_, _ = w.Write([]byte(`{"message":"Logged in","user":{"id":9},"provider":"google"}`))
	}))

	raw, err := c.GoogleLogin(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if !strings.Contains(string(raw), `"provider":"google"`) {
		t.Fatalf("payload not returned verbatim: %s", raw)
	}
}

func TestUpload_ReturnsServerPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart file: %v", err)
		}
		defer file.Close()
		if header.Filename != "site.jpg" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "assets/uploads/123_site.jpg"})
	}))

	url, err := c.Upload(context.Background(), "site.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "assets/uploads/123_site.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUpload_FailureIsUploadFailed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid file type"}`))
	}))

	if _, err := c.Upload(context.Background(), "x.exe", strings.NewReader("bin")); err != ErrUploadFailed {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestResolveBaseURL(t *testing.T) {
	cases := []struct{ host, want string }{
		{"localhost", "http://localhost:5000"},
		{"127.0.0.1", "http://127.0.0.1:5000"},
		{"sparkconnect.example.com", "https://sparkconnect.example.com"},
	}
	for _, tc := range cases {
		if got := ResolveBaseURL(tc.host); got != tc.want {
			t.Fatalf("ResolveBaseURL(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}
