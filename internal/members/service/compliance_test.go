package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/idx"
)

type fakeNoticeMailer struct {
	mu   sync.Mutex
	sent []string
	wg   sync.WaitGroup
}

func (f *fakeNoticeMailer) SendRemovalNotice(ctx context.Context, email, name string, daysLeft int) error {
	defer f.wg.Done()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	return nil
}

func seedMember(t *testing.T, s store.Store, number string, status domain.Status, markedAgo time.Duration) domain.Member {
	t.Helper()

	m := domain.Member{
		ID:           idx.New().String(),
		MemberNumber: number,
		Status:       status,
	}
	if markedAgo > 0 {
		at := time.Now().UTC().Add(-markedAgo)
		m.MarkedForRemovalAt = &at
		m.RemovalReason = "dues lapsed"
	}
	require.NoError(t, s.Members().CreateMember(context.Background(), m))
	return m
}

func TestMarkForRemoval(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	m := seedMember(t, s, "200001", domain.StatusNonFinancial, 0)

	marked, err := svc.MarkForRemoval(ctx, m.ID, "dues lapsed")
	require.NoError(t, err)
	require.NotNil(t, marked.MarkedForRemovalAt)

	days, ok := marked.DaysUntilRemoval(time.Now())
	require.True(t, ok)
	assert.Equal(t, domain.RemovalGraceDays, days)
}

func TestMarkForRemoval_RepeatIsNoOp(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	m := seedMember(t, s, "200002", domain.StatusNonFinancial, 0)

	first, err := svc.MarkForRemoval(ctx, m.ID, "dues lapsed")
	require.NoError(t, err)

	// the clock does not reset on a second mark
	second, err := svc.MarkForRemoval(ctx, m.ID, "still lapsed")
	require.NoError(t, err)
	assert.True(t, second.MarkedForRemovalAt.Equal(*first.MarkedForRemovalAt))
	assert.Equal(t, "dues lapsed", second.RemovalReason)
}

func TestMarkForRemoval_ProtectedStatus(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	for _, status := range []domain.Status{
		domain.StatusFinancialLifeMember,
		domain.StatusNonFinancialLifeMember,
		domain.StatusSuspended,
	} {
		m := seedMember(t, s, "prot-"+string(status), status, 0)
		_, err := svc.MarkForRemoval(ctx, m.ID, "dues lapsed")
		assert.ErrorIs(t, err, ErrStatusProtected, string(status))
	}
}

func TestMarkForRemoval_NotFound(t *testing.T) {
	svc := &ComplianceService{Store: newTestStore(t)}
	_, err := svc.MarkForRemoval(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMarkForRemoval_SendsNotice(t *testing.T) {
	s := newTestStore(t)
	mailer := &fakeNoticeMailer{}
	mailer.wg.Add(1)
	svc := &ComplianceService{Store: s, Mailer: mailer}
	ctx := context.Background()

	user := domain.User{
		ID: idx.New().String(), Username: "noticed", Email: "noticed@example.com",
		PasswordHash: "x", Active: true,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))
	m := domain.Member{
		ID: idx.New().String(), UserID: user.ID, MemberNumber: "200003",
		Status: domain.StatusNonFinancial,
	}
	require.NoError(t, s.Members().CreateMember(ctx, m))

	_, err := svc.MarkForRemoval(ctx, m.ID, "dues lapsed")
	require.NoError(t, err)

	mailer.wg.Wait()
	assert.Equal(t, []string{"noticed@example.com"}, mailer.sent)
}

func TestClearRemoval(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	m := seedMember(t, s, "200004", domain.StatusNonFinancial, 10*24*time.Hour)

	cleared, err := svc.ClearRemoval(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.MarkedForRemovalAt)
	assert.Empty(t, cleared.RemovalReason)
}

func TestSweepExpired(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	overdue := seedMember(t, s, "300001", domain.StatusNonFinancial, 91*24*time.Hour)
	inWindow := seedMember(t, s, "300002", domain.StatusNonFinancial, 30*24*time.Hour)
	unmarked := seedMember(t, s, "300003", domain.StatusFinancial, 0)

	result, err := svc.SweepExpired(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, overdue.ID, result.Removed[0].ID)

	_, err = s.Members().GetMemberByID(ctx, overdue.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Members().GetMemberByID(ctx, inWindow.ID)
	assert.NoError(t, err)
	_, err = s.Members().GetMemberByID(ctx, unmarked.ID)
	assert.NoError(t, err)
}

func TestSweepExpired_DeactivatesCredential(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	user := domain.User{ID: idx.New().String(), Username: "expired", PasswordHash: "x", Active: true}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	at := time.Now().UTC().Add(-100 * 24 * time.Hour)
	require.NoError(t, s.Members().CreateMember(ctx, domain.Member{
		ID: idx.New().String(), UserID: user.ID, MemberNumber: "300004",
		Status: domain.StatusNonFinancial, MarkedForRemovalAt: &at,
	}))

	_, err := svc.SweepExpired(ctx, false)
	require.NoError(t, err)

	got, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestSweepExpired_DryRun(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	overdue := seedMember(t, s, "300005", domain.StatusNonFinancial, 91*24*time.Hour)

	result, err := svc.SweepExpired(ctx, true)
	require.NoError(t, err)
	require.Len(t, result.Removed, 1)
	assert.True(t, result.DryRun)

	// nothing was deleted
	_, err = s.Members().GetMemberByID(ctx, overdue.ID)
	assert.NoError(t, err)
}

func TestSweepExpired_Idempotent(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	seedMember(t, s, "300006", domain.StatusNonFinancial, 91*24*time.Hour)

	first, err := svc.SweepExpired(ctx, false)
	require.NoError(t, err)
	assert.Len(t, first.Removed, 1)

	second, err := svc.SweepExpired(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, second.Removed)
}

func TestSweepExpired_SkipsProtected(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	// suspended after the mark was set
	m := seedMember(t, s, "300007", domain.StatusSuspended, 91*24*time.Hour)

	result, err := svc.SweepExpired(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)

	_, err = s.Members().GetMemberByID(ctx, m.ID)
	assert.NoError(t, err)
}

func TestListStandings(t *testing.T) {
	s := newTestStore(t)
	svc := &ComplianceService{Store: s}
	ctx := context.Background()

	seedMember(t, s, "400001", domain.StatusFinancial, 0)
	seedMember(t, s, "400002", domain.StatusNonFinancial, 45*24*time.Hour)

	standings, err := svc.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Nil(t, standings[0].DaysUntilRemoval)
	require.NotNil(t, standings[1].DaysUntilRemoval)
	assert.Equal(t, 45, *standings[1].DaysUntilRemoval)
	assert.False(t, standings[1].RemovalEligible)
}
