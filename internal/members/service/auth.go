package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/jwtx"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account has not been activated")
	ErrTOTPRequired       = errors.New("totp code required")
	ErrInvalidTOTPCode    = errors.New("invalid totp code")
	ErrTOTPNotEnrolled    = errors.New("totp not enrolled")
)

// AuthService issues access tokens for activated accounts. Officers with
// TOTP enabled must present a code alongside their password.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
	Issuer string
}

// TOTPEnrollment is returned from EnrollTOTP for the authenticator app.
type TOTPEnrollment struct {
	Secret     string
	OTPAuthURL string
}

// Login verifies a password (and TOTP code when enrolled) and returns a
// signed access token carrying the user's capabilities.
func (s *AuthService) Login(ctx context.Context, username, password, totpCode string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	if username == "" || password == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}

	// 1. Fetch the user. Verify against a dummy hash on miss so response
	// timing does not reveal which usernames exist.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash())
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 2. Verify the password
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login failed", slog.String("username", username))
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}

	// 3. Placeholder accounts cannot log in until activated via invitation.
	if !user.Active {
		log.Warn("login attempted on inactive account", slog.String("username", username))
		return "", domain.User{}, ErrAccountInactive
	}

	// 4. TOTP gate
	amr := []string{"pwd"}
	if user.TOTPEnabled != nil {
		if totpCode == "" {
			return "", domain.User{}, ErrTOTPRequired
		}
		if user.TOTPSecret == nil || !totp.Validate(totpCode, *user.TOTPSecret) {
			log.Warn("login failed totp check", slog.String("username", username))
			return "", domain.User{}, ErrInvalidTOTPCode
		}
		amr = append(amr, "otp")
	}

	// 5. Issue the token
	claims := jwtx.NewAccessClaims(
		user.ID,
		domain.CapabilitiesFor(user),
		amr,
		jwtx.DefaultAccessTokenTTL,
		s.Issuer,
		user.Username,
		time.Now(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("officer", user.Officer),
	)

	return token, user, nil
}

// EnrollTOTP generates a TOTP secret for the user. The secret is stored but
// TOTP is not enforced until VerifyTOTP confirms the authenticator works.
func (s *AuthService) EnrollTOTP(ctx context.Context, userID string) (TOTPEnrollment, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TOTPEnrollment{}, ErrInvalidCredentials
		}
		return TOTPEnrollment{}, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to generate totp key: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return TOTPEnrollment{}, err
	}

	log.Info("totp enrollment started", slog.String("user_id", userID))

	return TOTPEnrollment{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
	}, nil
}

// VerifyTOTP confirms the authenticator with a live code and turns
// enforcement on.
func (s *AuthService) VerifyTOTP(ctx context.Context, userID string, code string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if user.TOTPSecret == nil {
		return ErrTOTPNotEnrolled
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableTOTP(ctx, userID); err != nil {
		return err
	}

	log.Info("totp enabled", slog.String("user_id", userID))
	return nil
}

// DisableTOTP removes TOTP after verifying a live code.
func (s *AuthService) DisableTOTP(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if user.TOTPSecret == nil {
		return ErrTOTPNotEnrolled
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.Store.Users().DisableTOTP(ctx, userID)
}

// dummyHash keeps failed-username and failed-password paths comparable in
// cost. Computed once on first miss; the pepper is configured by then.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("not-a-real-password")
	if err != nil {
		return ""
	}
	return h
})
