package members_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nugammasigma/chapter/internal/members/domain"
	httpapi "github.com/nugammasigma/chapter/internal/members/http"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/internal/members/store/drivers/sqlite"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/idx"
	"github.com/nugammasigma/chapter/pkg/jwtx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

/*
 * End-to-end tests for the member service. Each test boots the full router
 * over an in-memory HTTP server backed by a throwaway SQLite file and drives
 * it through the membersdk client, the same way chapter tooling does.
 */

const (
	testIssuer      = "chapter-members-e2e"
	officerUsername = "treasurer"
	officerPassword = "Treasurer123!"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "members-e2e-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	URL    string
	Client *membersdk.Client
	Store  store.Store
}

// newTestServer boots the router with a fresh database and an ephemeral
// signing key. A fresh server per test also resets the rate limiters.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "e2e.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.GenerateSigner("e2e-key")
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger := slogx.New(slogx.Config{
		Service: "member-service",
		Version: "test",
		Env:     "dev",
		Level:   "error",
		Format:  "text",
	})

	router := httpapi.NewRouter(keys, jwtx.NewVerifier(keys, testIssuer), "test", st, logger)
	router.AuthService = &service.AuthService{Store: st, Signer: signer, Issuer: testIssuer}
	router.InvitationService = &service.InvitationService{Store: st}
	router.RosterService = &service.RosterService{Store: st, Invitations: router.InvitationService}
	router.ComplianceService = &service.ComplianceService{Store: st}
	router.DuesService = &service.DuesService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: membersdk.NewClient(srv.URL),
		Store:  st,
	}
}

// seedOfficer creates an active officer credential directly in the store.
func seedOfficer(t *testing.T, st store.Store) {
	t.Helper()

	hash, err := cryptox.HashPassword(officerPassword)
	require.NoError(t, err)

	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:           idx.New().String(),
		Username:     officerUsername,
		Email:        "treasurer@example.org",
		FirstName:    "Tre",
		LastName:     "Surer",
		PasswordHash: hash,
		Active:       true,
		Officer:      true,
	}))
}

func loginOfficer(t *testing.T, ts *testServer) *membersdk.Session {
	t.Helper()

	session, resp, err := ts.Client.Login(context.Background(), membersdk.LoginRequest{
		Username: officerUsername,
		Password: officerPassword,
	})
	require.NoError(t, err)
	require.True(t, resp.Officer)
	return session
}

// backdateMark rewrites a member's removal mark so the grace period has
// already elapsed.
func backdateMark(t *testing.T, st store.Store, memberID string, daysAgo int) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, st.Members().ClearRemovalMark(ctx, memberID))
	at := time.Now().UTC().Add(-time.Duration(daysAgo) * 24 * time.Hour)
	set, err := st.Members().SetRemovalMark(ctx, memberID, at, "dues lapsed")
	require.NoError(t, err)
	require.True(t, set)
}
