package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sparkconnect/directory/internal/core/ports"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// ErrInvalidCredential indicates the Google ID token did not verify.
var ErrInvalidCredential = errors.New("invalid google credential")

// Verifier validates Google ID tokens against the tokeninfo endpoint.
type Verifier struct {
	clientID string
	endpoint string
	http     *http.Client
}

var _ ports.CredentialVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier for the given OAuth client id. When clientID
// is empty the audience check is skipped.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID: clientID,
		endpoint: tokenInfoURL,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the tokeninfo URL, used by tests.
func (v *Verifier) WithEndpoint(endpoint string) *Verifier {
	v.endpoint = endpoint
	return v
}

// Verify resolves the credential to a verified identity.
func (v *Verifier) Verify(ctx context.Context, credential string) (*ports.GoogleIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		v.endpoint+"?id_token="+url.QueryEscape(credential), nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidCredential
	}

	var claims struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}

	if claims.Email == "" || claims.EmailVerified != "true" {
		return nil, ErrInvalidCredential
	}
	if v.clientID != "" && claims.Aud != v.clientID {
		return nil, ErrInvalidCredential
	}

	return &ports.GoogleIdentity{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
