package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/idx"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail bool
	wg   sync.WaitGroup
}

func (f *fakeMailer) SendInvitation(ctx context.Context, email, name, code string, expiresAt *time.Time) error {
	defer f.wg.Done()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, email)
	return nil
}

func TestCreateInvitation(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Jones",
		MemberNumber: "100001",
		CreatedBy:    "officer-1",
	})
	require.NoError(t, err)

	assert.Len(t, inv.Code, 20)
	assert.Equal(t, "alice@example.com", inv.Email)
	assert.False(t, inv.Used)

	// the code is stored as issued so officers can re-read and resend it
	stored, err := s.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, stored.ID)
}

func TestCreateInvitation_Validation(t *testing.T) {
	svc := &InvitationService{Store: newTestStore(t)}
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, CreateInvitationParams{Email: ""})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.CreateInvitation(ctx, CreateInvitationParams{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	past := time.Now().Add(-time.Hour)
	_, err = svc.CreateInvitation(ctx, CreateInvitationParams{Email: "a@b.c", ExpiresAt: &past})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateInvitation_SendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	mailer.wg.Add(1)
	svc := &InvitationService{Store: newTestStore(t), Mailer: mailer}

	_, err := svc.CreateInvitation(context.Background(), CreateInvitationParams{
		Email: "alice@example.com", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	mailer.wg.Wait()
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
}

func TestValidateCode(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "alice@example.com", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	t.Run("valid code and email", func(t *testing.T) {
		got, err := svc.ValidateCode(ctx, inv.Code, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, inv.ID, got.ID)
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, inv.Code, "ALICE@Example.COM")
		assert.NoError(t, err)
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, inv.Code, "mallory@example.com")
		assert.ErrorIs(t, err, ErrEmailMismatch)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, "NOSUCHCODE", "alice@example.com")
		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.ValidateCode(ctx, "", "alice@example.com")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestValidateCode_Expired(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, domain.Invitation{
		ID: idx.New().String(), Code: "OLDCODE", Email: "alice@example.com",
		CreatedBy: "officer-1", ExpiresAt: &expired,
	}))

	_, err := svc.ValidateCode(ctx, "OLDCODE", "alice@example.com")
	assert.ErrorIs(t, err, ErrInvitationExpired)
}

func TestValidateCode_UsedAndExpired(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	claimant := domain.User{ID: idx.New().String(), Username: "claimant", PasswordHash: "x"}
	require.NoError(t, s.Users().CreateUser(ctx, claimant))

	expired := time.Now().Add(-time.Hour)
	inv := domain.Invitation{
		ID: idx.New().String(), Code: "STALECODE", Email: "alice@example.com",
		CreatedBy: "officer-1", ExpiresAt: &expired,
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))
	claimed, err := s.Invitations().MarkInvitationUsed(ctx, inv.ID, claimant.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	// expiry takes precedence over used
	_, err = svc.ValidateCode(ctx, "STALECODE", "alice@example.com")
	assert.ErrorIs(t, err, ErrInvitationExpired)
}

func TestActivateAccount(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Jones",
		MemberNumber: "100001",
		CreatedBy:    "officer-1",
	})
	require.NoError(t, err)

	user, err := svc.ActivateAccount(ctx, inv.Code, "alice@example.com", "alice", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, user.Active)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.FirstName)
	assert.NoError(t, cryptox.VerifyPassword("s3cret-pass", user.PasswordHash))

	// invitation is consumed
	stored, err := s.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.True(t, stored.Used)
	assert.Equal(t, user.ID, stored.UsedBy)

	// member profile is created and linked
	member, err := s.Members().GetMemberByNumber(ctx, "100001")
	require.NoError(t, err)
	assert.Equal(t, user.ID, member.UserID)
	assert.Equal(t, domain.StatusNewMember, member.Status)

	// second redemption fails
	_, err = svc.ActivateAccount(ctx, inv.Code, "alice@example.com", "alice2", "other-pass")
	assert.ErrorIs(t, err, ErrInvitationUsed)
}

func TestActivateAccount_UsernameTaken(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID: idx.New().String(), Username: "alice", PasswordHash: "x", Active: true,
	}))

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "alice@example.com", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	_, err = svc.ActivateAccount(ctx, inv.Code, "alice@example.com", "alice", "pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// the code survives the failed attempt
	stored, err := s.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.False(t, stored.Used)
}

func TestActivateAccount_PlaceholderTakeover(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	// officer pre-provisioned the credential; it cannot log in yet
	placeholder := domain.User{
		ID: idx.New().String(), Username: "alice", PasswordHash: "random", Active: false,
	}
	require.NoError(t, s.Users().CreateUser(ctx, placeholder))

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Jones", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	user, err := svc.ActivateAccount(ctx, inv.Code, "alice@example.com", "alice", "chosen-pass")
	require.NoError(t, err)

	assert.Equal(t, placeholder.ID, user.ID, "placeholder credential is adopted, not duplicated")
	assert.True(t, user.Active)
	assert.Equal(t, "Alice", user.FirstName)
	assert.NoError(t, cryptox.VerifyPassword("chosen-pass", user.PasswordHash))
}

func TestActivateAccount_AdoptsSyncedProfile(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	// roster sync created the profile before the member ever signed up
	require.NoError(t, s.Members().CreateMember(ctx, domain.Member{
		ID: idx.New().String(), MemberNumber: "100055",
		Status: domain.StatusNonFinancial, DuesCurrent: false,
	}))

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "bob@example.com", MemberNumber: "100055", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	user, err := svc.ActivateAccount(ctx, inv.Code, "bob@example.com", "bob", "pass-123")
	require.NoError(t, err)

	member, err := s.Members().GetMemberByNumber(ctx, "100055")
	require.NoError(t, err)
	assert.Equal(t, user.ID, member.UserID)
	assert.Equal(t, domain.StatusNewMember, member.Status)
}

func TestActivateAccount_AttachesNumberToProvisionedProfile(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	provisioner := &RosterService{Store: s}
	ctx := context.Background()

	// officer provisioned the credential without a national number
	_, err := provisioner.ProvisionMember(ctx, ProvisionMemberParams{Username: "erin"})
	require.NoError(t, err)

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "erin@example.com", MemberNumber: "500123", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	user, err := svc.ActivateAccount(ctx, inv.Code, "erin@example.com", "erin", "pass-123")
	require.NoError(t, err)

	member, err := s.Members().GetMemberByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "500123", member.MemberNumber, "number lands on the existing profile")

	byNumber, err := s.Members().GetMemberByNumber(ctx, "500123")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byNumber.ID)
}

func TestActivateAccount_ProfileLinkConflict(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	// an active account already owns the member number
	holder := domain.User{ID: idx.New().String(), Username: "carol", PasswordHash: "x", Active: true}
	require.NoError(t, s.Users().CreateUser(ctx, holder))
	require.NoError(t, s.Members().CreateMember(ctx, domain.Member{
		ID: idx.New().String(), UserID: holder.ID, MemberNumber: "100077",
		Status: domain.StatusFinancial, DuesCurrent: true,
	}))

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "imposter@example.com", MemberNumber: "100077", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	_, err = svc.ActivateAccount(ctx, inv.Code, "imposter@example.com", "dave", "pass-123")
	assert.ErrorIs(t, err, ErrProfileLinkConflict)

	// nothing was consumed or re-linked
	stored, err := s.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.False(t, stored.Used)

	member, err := s.Members().GetMemberByNumber(ctx, "100077")
	require.NoError(t, err)
	assert.Equal(t, holder.ID, member.UserID)
}

func TestActivateAccount_ProtectedStatusSurvives(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	require.NoError(t, s.Members().CreateMember(ctx, domain.Member{
		ID: idx.New().String(), MemberNumber: "100088",
		Status: domain.StatusFinancialLifeMember, DuesCurrent: true,
	}))

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "life@example.com", MemberNumber: "100088", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	_, err = svc.ActivateAccount(ctx, inv.Code, "life@example.com", "lifer", "pass-123")
	require.NoError(t, err)

	member, err := s.Members().GetMemberByNumber(ctx, "100088")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinancialLifeMember, member.Status)
}

func TestActivateAccount_ConcurrentRedemption(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "race@example.com", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, username := range []string{"racer-a", "racer-b"} {
		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			_, err := svc.ActivateAccount(ctx, inv.Code, "race@example.com", username, "pass-123")
			results <- err
		}(username)
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent redemption may win")

	stored, err := s.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.True(t, stored.Used)
	assert.NotEmpty(t, stored.UsedBy)
}

func TestRevokeInvitation(t *testing.T) {
	s := newTestStore(t)
	svc := &InvitationService{Store: s}
	ctx := context.Background()

	inv, err := svc.CreateInvitation(ctx, CreateInvitationParams{
		Email: "gone@example.com", CreatedBy: "officer-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeInvitation(ctx, inv.ID))

	_, err = svc.ValidateCode(ctx, inv.Code, "gone@example.com")
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	assert.ErrorIs(t, svc.RevokeInvitation(ctx, inv.ID), ErrInvitationNotFound)
}
