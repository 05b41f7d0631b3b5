package members_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/pkg/membersdk"
)

// TestManualPaymentRestoresStanding books a dues payment against a marked
// member and checks the countdown clears.
func TestManualPaymentRestoresStanding(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	member, err := officer.ProvisionMember(ctx, membersdk.ProvisionRequest{
		Username:     "behind",
		Email:        "behind@example.org",
		MemberNumber: "NG-3001",
	})
	require.NoError(t, err)

	require.NoError(t, ts.Store.Members().UpdateStanding(ctx, member.ID, domain.StatusNonFinancial, false))
	_, err = officer.MarkMember(ctx, member.ID, "dues lapsed")
	require.NoError(t, err)

	payment, err := officer.RecordPayment(ctx, membersdk.PaymentRequest{
		MemberID:    member.ID,
		AmountCents: 15000,
		Type:        "annual_dues",
		Note:        "check #1042",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", payment.Status)
	assert.NotZero(t, payment.PaidAt)

	refreshed, err := officer.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, refreshed, 1)
	assert.Equal(t, "financial", refreshed[0].Status)
	assert.True(t, refreshed[0].DuesCurrent)
	assert.Nil(t, refreshed[0].DaysUntilRemoval)

	history, err := officer.ListPayments(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(15000), history[0].AmountCents)
}

func TestRecordPaymentRejectsUnknownType(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)

	_, err := officer.RecordPayment(context.Background(), membersdk.PaymentRequest{
		MemberID:    "whatever",
		AmountCents: 100,
		Type:        "tribute",
	})
	var apiErr *membersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

// TestCheckoutWithoutProcessor ensures the checkout endpoint degrades cleanly
// when Stripe is not configured.
func TestCheckoutWithoutProcessor(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	inv, err := officer.CreateInvitation(ctx, membersdk.InvitationRequest{
		Email:        "payer@example.org",
		MemberNumber: "NG-3002",
	})
	require.NoError(t, err)
	_, err = ts.Client.Signup(ctx, membersdk.SignupRequest{
		Code:     inv.Code,
		Email:    "payer@example.org",
		Username: "payer",
		Password: "Hunter2Hunter2!",
	})
	require.NoError(t, err)

	session, _, err := ts.Client.Login(ctx, membersdk.LoginRequest{
		Username: "payer",
		Password: "Hunter2Hunter2!",
	})
	require.NoError(t, err)

	_, err = session.StartCheckout(ctx)
	var apiErr *membersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

// TestRosterSyncUpload drives the CSV import over HTTP: unknown numbers
// become profiles, and a member who drops off the next export starts the
// removal countdown.
func TestRosterSyncUpload(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	officer := loginOfficer(t, ts)
	ctx := context.Background()

	hqList := "member_number,first_name,last_name,email\n" +
		"NG-4001,Alex,Alpha,alex@example.org\n" +
		"NG-4002,Blair,Beta,blair@example.org\n"

	report, err := officer.SyncRoster(ctx, strings.NewReader(hqList), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Zero(t, report.Marked)
	assert.Empty(t, report.RowErrors)

	roster, err := officer.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, m := range roster {
		assert.True(t, m.DuesCurrent)
		assert.Nil(t, m.DaysUntilRemoval)
	}

	// NG-4002 is missing from the next export. A dry run reports the mark
	// without applying it.
	nextExport := "member_number\nNG-4001\n"
	report, err = officer.SyncRoster(ctx, strings.NewReader(nextExport), true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Marked)

	roster, err = officer.ListMembers(ctx)
	require.NoError(t, err)
	for _, m := range roster {
		assert.Nil(t, m.DaysUntilRemoval)
	}

	report, err = officer.SyncRoster(ctx, strings.NewReader(nextExport), false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Marked)

	roster, err = officer.ListMembers(ctx)
	require.NoError(t, err)
	byNumber := map[string]membersdk.MemberResponse{}
	for _, m := range roster {
		byNumber[m.MemberNumber] = m
	}
	assert.True(t, byNumber["NG-4001"].DuesCurrent)
	assert.Nil(t, byNumber["NG-4001"].DaysUntilRemoval)

	dropped := byNumber["NG-4002"]
	assert.Equal(t, "non_financial", dropped.Status)
	assert.False(t, dropped.DuesCurrent)
	require.NotNil(t, dropped.DaysUntilRemoval)
	assert.Equal(t, 90, *dropped.DaysUntilRemoval)

	// Reappearing on a later export does not clear the mark.
	report, err = officer.SyncRoster(ctx, strings.NewReader(hqList), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Matched)
	assert.Zero(t, report.Marked)

	roster, err = officer.ListMembers(ctx)
	require.NoError(t, err)
	for _, m := range roster {
		if m.MemberNumber == "NG-4002" {
			assert.NotNil(t, m.DaysUntilRemoval)
		}
	}
}

// TestRosterSyncRequiresConfirm checks the upload is rejected without the
// confirm flag.
func TestRosterSyncRequiresConfirm(t *testing.T) {
	ts := newTestServer(t)
	seedOfficer(t, ts.Store)
	ctx := context.Background()

	_, login, err := ts.Client.Login(ctx, membersdk.LoginRequest{
		Username: officerUsername,
		Password: officerPassword,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		ts.URL+"/v1/members/sync", strings.NewReader("member_number\nNG-4100\n"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
