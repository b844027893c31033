package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sparkconnect/directory/internal/api/metrics"
	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

const resetTokenSalt = "password-reset"

// AuthService implements registration, login and password recovery.
type AuthService struct {
	repo        ports.UserRepository
	verifier    ports.CredentialVerifier
	mailer      ports.Mailer
	resetSecret string
	resetTTL    time.Duration
	resetURL    string
	log         zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, verifier ports.CredentialVerifier, mailer ports.Mailer, resetSecret, resetURL string, resetTTL time.Duration, log zerolog.Logger) *AuthService {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AuthService{
		repo:        repo,
		verifier:    verifier,
		mailer:      mailer,
		resetSecret: resetSecret,
		resetTTL:    resetTTL,
		resetURL:    resetURL,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Listing, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.Listing{
		Name:         input.Name,
		Specialty:    input.Specialty,
		Location:     input.Location,
		State:        input.State,
		Phone:        input.Phone,
		Whatsapp:     input.Whatsapp,
		Description:  input.Description,
		Image:        domain.PlaceholderImage,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Rating:       0,
		Reviews:      0,
		Gallery:      []string{},
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.Inc()
	s.log.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("account registered")
	return s.withAdmin(created), nil
}

// Login accepts either the account email or the display name, matched
// case-insensitively.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Listing, error) {
	user, err := s.repo.FindByIdentifier(ctx, strings.ToLower(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return s.withAdmin(user), nil
}

// GoogleLogin verifies the provider credential and provisions an account on
// first sight with an unguessable random password.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*domain.Listing, bool, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, false, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(identity.Email))
	if err == nil {
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		return s.withAdmin(user), false, nil
	}
	if !errors.Is(err, domain.ErrListingNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword(randomSecret(), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	image := identity.Picture
	if image == "" {
		image = domain.PlaceholderImage
	}
	created, err := s.repo.Create(ctx, &domain.Listing{
		Name:         identity.Name,
		Email:        strings.ToLower(identity.Email),
		PasswordHash: string(hash),
		Image:        image,
		Gallery:      []string{},
	})
	if err != nil {
		return nil, false, err
	}
	metrics.RegistrationsTotal.Inc()
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int("user_id", created.ID).Msg("account provisioned from google identity")
	return s.withAdmin(created), true, nil
}

// CurrentUser resolves the session's user id. A stale id (account deleted
// since login) yields (nil, nil), matching the no-session outcome.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*domain.Listing, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.withAdmin(user), nil
}

// ForgotPassword issues a reset token and emails the reset link. It succeeds
// silently for unknown addresses so the endpoint never reveals whether an
// account exists, and mail failures are logged rather than surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil
		}
		return err
	}

	expiry := time.Now().UTC().Add(s.resetTTL)
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"salt": resetTokenSalt,
		"exp":  expiry.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.resetSecret))
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	msg := resetMail(user.Name, user.Email, s.resetURL+"?token="+token)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("reset mail delivery failed")
	}
	return nil
}

// ResetPassword validates a token issued by ForgotPassword, checks it is the
// one on record and unexpired, then replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.resetSecret), nil
	})
	if err != nil || !parsed.Valid || claims["salt"] != resetTokenSalt {
		return domain.ErrInvalidResetToken
	}
	email, _ := claims["sub"].(string)

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	stored, expiry, err := s.repo.ResetToken(ctx, user.ID)
	if err != nil || stored != token {
		return domain.ErrInvalidResetToken
	}
	if !expiry.IsZero() && time.Now().After(expiry) {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.log.Info().Int("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) withAdmin(user *domain.Listing) *domain.Listing {
	user.Admin = user.Email == domain.AdminEmail
	return user
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// degraded entropy fallback, still bcrypt-hashed before storage
		return []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	return []byte(hex.EncodeToString(b))
}

func resetMail(name, email, resetLink string) ports.MailMessage {
	text := fmt.Sprintf(`Hello %s,

You requested to reset your password for your SparkConnect account.

Click the link below to reset your password (valid for 1 hour):
%s

If you didn't request this, please ignore this email.

Best regards,
SparkConnect Team
`, name, resetLink)

	html := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<h2 style="color: #2563eb;">Password Reset Request</h2>
<p>Hello %s,</p>
<p>You requested to reset your password for your SparkConnect account.</p>
<p><a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #2563eb; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
<p>Or copy and paste this link into your browser:</p>
<p style="color: #666; word-break: break-all;">%s</p>
<p>If you didn't request this, please ignore this email.</p>
<p style="color: #666;">Best regards,<br>SparkConnect Team</p>
</div></body></html>`, name, resetLink, resetLink)

	return ports.MailMessage{
		To:      email,
		Subject: "Password Reset Request - SparkConnect",
		Text:    text,
		HTML:    html,
	}
}
