package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ticketplace/backend/internal/events"
	"github.com/ticketplace/backend/internal/hash"
	"github.com/ticketplace/backend/internal/logging"
	"github.com/ticketplace/backend/internal/models"
	"github.com/ticketplace/backend/internal/password"
	"github.com/ticketplace/backend/internal/repo"
	"github.com/ticketplace/backend/internal/tokens"
)

var (
	ErrWeakPassword       = errors.New("password is not strong enough")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	Repo     *repo.UserRepo
	Issuer   *tokens.Issuer
	Verifier *tokens.Verifier
	Producer *events.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         *models.User
}

type TokenStatus struct {
	Valid  bool
	UserID string
	Reason string
}

// Register validates the password against the policy, hashes it and
// persists the new account. The plaintext never leaves this call.
func (s *AuthService) Register(ctx context.Context, name, email, pass, gender string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if !password.IsStrong(pass) {
		l.Warn("register_rejected", "reason", "weak_password")
		return "", ErrWeakPassword
	}

	pwHash, err := hash.Password(pass)
	if err != nil {
		l.Error("register_failed", "reason", "hash", "error", err)
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: pwHash,
		Gender:       gender,
		Avatar:       models.DefaultAvatar,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_rejected", "reason", "email_taken")
			return "", ErrEmailTaken
		}
		l.Error("register_failed", "error", err)
		return "", err
	}

	s.publish(ctx, events.UserEvent{
		Type:   events.TypeUserRegistered,
		UserID: user.ID,
		Email:  user.Email,
	})

	l.Info("user_registered", "user_id", user.ID)
	return user.ID, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// An unknown email and a wrong password both come back as
// ErrInvalidCredentials; the distinction exists only in the log.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("login_failed", "reason", "unknown_email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !hash.Check(user.PasswordHash, pass) {
		l.Warn("login_failed", "reason", "wrong_password")
		return nil, ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.Issuer.Access(user.ID)
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, err
	}
	refreshToken, refreshExp, err := s.Issuer.Refresh(user.ID)
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, events.UserEvent{
		Type:   events.TypeUserLoggedIn,
		UserID: user.ID,
		Email:  user.Email,
	})

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         user,
	}, nil
}

// ValidateToken reports whether the token carries a trustworthy identity.
// Any verification failure yields Valid=false with the failure reason.
func (s *AuthService) ValidateToken(token string) TokenStatus {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return TokenStatus{Valid: false, Reason: err.Error()}
	}
	return TokenStatus{Valid: true, UserID: claims.Subject}
}

// GetAuthenticatedUser resolves a verified access token to its account.
func (s *AuthService) GetAuthenticatedUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokens.KindAccess {
		return nil, tokens.ErrSignatureInvalid
	}
	return s.GetUser(ctx, claims.Subject)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, event events.UserEvent) {
	if err := s.Producer.Publish(ctx, event.UserID, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", event.Type, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
