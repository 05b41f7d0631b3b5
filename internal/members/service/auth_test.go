package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/idx"
	"github.com/nugammasigma/chapter/pkg/jwtx"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	signer, err := jwtx.GenerateSigner("test-key")
	require.NoError(t, err)

	return &AuthService{
		Store:  newTestStore(t),
		Signer: signer,
		Issuer: "member-service-test",
	}
}

func seedUser(t *testing.T, svc *AuthService, username, password string, active, officer bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Active:       active,
		Officer:      officer,
	}
	require.NoError(t, svc.Store.Users().CreateUser(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := seedUser(t, svc, "member", "correct-horse", true, false)

	token, got, err := svc.Login(ctx, "member", "correct-horse", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	keys := jwtx.NewKeySet()
	keys.AddSigner(svc.Signer)
	claims, err := jwtx.NewVerifier(keys, svc.Issuer).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Contains(t, claims.Scopes, domain.ScopeProfileRead)
	assert.NotContains(t, claims.Scopes, domain.ScopeRosterWrite)
}

func TestLogin_OfficerScopes(t *testing.T) {
	svc := newAuthService(t)

	seedUser(t, svc, "officer", "pw-officer", true, true)

	token, _, err := svc.Login(context.Background(), "officer", "pw-officer", "")
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(svc.Signer)
	claims, err := jwtx.NewVerifier(keys, svc.Issuer).Verify(token)
	require.NoError(t, err)
	assert.Contains(t, claims.Scopes, domain.ScopeRosterWrite)
	assert.Contains(t, claims.Scopes, domain.ScopeComplianceWrite)
}

func TestLogin_Failures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	seedUser(t, svc, "someone", "right-pass", true, false)
	seedUser(t, svc, "pending", "irrelevant", false, false)

	_, _, err := svc.Login(ctx, "someone", "wrong-pass", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "any-pass", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "pending", "irrelevant", "")
	assert.ErrorIs(t, err, ErrAccountInactive)

	_, _, err = svc.Login(ctx, "", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTOTPLifecycle(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := seedUser(t, svc, "treasurer", "pw-totp", true, true)

	enrollment, err := svc.EnrollTOTP(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.OTPAuthURL, "otpauth://")

	// enrolled but not yet verified; login still works without a code
	_, _, err = svc.Login(ctx, "treasurer", "pw-totp", "")
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyTOTP(ctx, user.ID, code))

	// now enforced
	_, _, err = svc.Login(ctx, "treasurer", "pw-totp", "")
	assert.ErrorIs(t, err, ErrTOTPRequired)

	_, _, err = svc.Login(ctx, "treasurer", "pw-totp", "000000")
	assert.ErrorIs(t, err, ErrInvalidTOTPCode)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "treasurer", "pw-totp", code)
	require.NoError(t, err)

	// disable with a live code
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.DisableTOTP(ctx, user.ID, code))

	_, _, err = svc.Login(ctx, "treasurer", "pw-totp", "")
	require.NoError(t, err)
}

func TestVerifyTOTP_NotEnrolled(t *testing.T) {
	svc := newAuthService(t)
	user := seedUser(t, svc, "plain", "pw", true, false)

	err := svc.VerifyTOTP(context.Background(), user.ID, "123456")
	assert.ErrorIs(t, err, ErrTOTPNotEnrolled)
}
