package members_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/pkg/membersdk"
)

// TestRemovalCountdown covers the mark, reset, and sweep lifecycle over HTTP.
func TestRemovalCountdown(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	member, err := officer.ProvisionMember(ctx, membersdk.ProvisionRequest{
		Username:     "lapsed",
		Email:        "lapsed@example.org",
		MemberNumber: "NG-2001",
	})
	require.NoError(t, err)
	assert.Nil(t, member.DaysUntilRemoval)

	marked, err := officer.MarkMember(ctx, member.ID, "dues lapsed")
	require.NoError(t, err)
	require.NotNil(t, marked.DaysUntilRemoval)
	assert.Equal(t, 90, *marked.DaysUntilRemoval)
	assert.False(t, marked.RemovalEligible)

	// A fresh mark is nowhere near due; the sweep leaves it alone
	sweep, err := officer.Sweep(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.Examined)
	assert.Empty(t, sweep.Removed)

	reset, err := officer.ResetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, reset.DaysUntilRemoval)
}

func TestSweepRemovesOverdueMember(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	member, err := officer.ProvisionMember(ctx, membersdk.ProvisionRequest{
		Username:     "longgone",
		Email:        "longgone@example.org",
		MemberNumber: "NG-2002",
	})
	require.NoError(t, err)

	require.NoError(t, ts.Store.Members().UpdateStanding(ctx, member.ID, domain.StatusNonFinancial, false))
	backdateMark(t, ts.Store, member.ID, 91)

	// Dry run reports the candidate without touching it
	dry, err := officer.Sweep(ctx, true)
	require.NoError(t, err)
	require.Len(t, dry.Removed, 1)
	assert.True(t, dry.DryRun)

	_, err = officer.ResetMember(ctx, member.ID)
	require.NoError(t, err)
	backdateMark(t, ts.Store, member.ID, 91)

	sweep, err := officer.Sweep(ctx, false)
	require.NoError(t, err)
	require.Len(t, sweep.Removed, 1)
	assert.Equal(t, "NG-2002", sweep.Removed[0].MemberNumber)

	roster, err := officer.ListMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestMarkProtectedStatusRejected(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	member, err := officer.ProvisionMember(ctx, membersdk.ProvisionRequest{
		Username:     "lifer",
		Email:        "lifer@example.org",
		MemberNumber: "NG-0007",
	})
	require.NoError(t, err)
	require.NoError(t, ts.Store.Members().UpdateStanding(ctx, member.ID, domain.StatusFinancialLifeMember, true))

	_, err = officer.MarkMember(ctx, member.ID, "should not work")
	var apiErr *membersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}
