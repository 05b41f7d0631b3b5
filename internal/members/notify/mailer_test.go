package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *postmarkEmail, *string) {
	t.Helper()

	var received postmarkEmail
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-token", "noreply@chapter.test", "https://chapter.test",
		WithAPIURL(server.URL),
		WithHTTPClient(server.Client()),
	)
	return client, &received, &gotToken
}

func TestSendInvitation(t *testing.T) {
	client, received, gotToken := newTestClient(t)

	expires := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	err := client.SendInvitation(context.Background(), "alice@example.com", "Alice Jones", "CODE123", &expires)
	require.NoError(t, err)

	assert.Equal(t, "test-token", *gotToken)
	assert.Equal(t, "alice@example.com", received.To)
	assert.Equal(t, "noreply@chapter.test", received.From)
	assert.Equal(t, "Your chapter invitation code", received.Subject)
	assert.Contains(t, received.TextBody, "CODE123")
	assert.Contains(t, received.TextBody, "Hello Alice Jones")
	assert.Contains(t, received.TextBody, "September 30, 2026")
	assert.Contains(t, received.HtmlBody, "https://chapter.test/signup?code=CODE123")
}

func TestSendInvitation_NoExpiry(t *testing.T) {
	client, received, _ := newTestClient(t)

	err := client.SendInvitation(context.Background(), "bob@example.com", "", "CODE456", nil)
	require.NoError(t, err)

	assert.Contains(t, received.TextBody, "Hello,")
	assert.NotContains(t, received.TextBody, "expires")
}

func TestSendRemovalNotice(t *testing.T) {
	client, received, _ := newTestClient(t)

	err := client.SendRemovalNotice(context.Background(), "carol@example.com", "Carol", 45)
	require.NoError(t, err)

	assert.Equal(t, "Action required: 45 days until roster removal", received.Subject)
	assert.Contains(t, received.TextBody, "45 days")
	assert.Contains(t, received.HtmlBody, "https://chapter.test/dues")
}

func TestSend_NotConfigured(t *testing.T) {
	client := NewClient("", "noreply@chapter.test", "https://chapter.test")

	err := client.SendInvitation(context.Background(), "a@b.c", "", "X", nil)
	assert.Error(t, err)
}

func TestSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-token", "noreply@chapter.test", "https://chapter.test", WithAPIURL(server.URL))

	err := client.SendRemovalNotice(context.Background(), "a@b.c", "", 10)
	assert.Error(t, err)
}
