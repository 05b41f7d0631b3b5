// Package notify delivers member email via the Postmark API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.postmarkapp.com"

type Client struct {
	serverToken string
	fromEmail   string
	siteURL     string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL points the client at a different Postmark endpoint (tests).
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail, siteURL string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		siteURL:     siteURL,
		apiURL:      defaultAPIURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendInvitation emails a signup code to a prospective member.
func (c *Client) SendInvitation(ctx context.Context, email, name, code string, expiresAt *time.Time) error {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}

	expiry := ""
	if expiresAt != nil {
		expiry = fmt.Sprintf("\n\nThis code expires on %s.", expiresAt.Format("January 2, 2006"))
	}

	link := fmt.Sprintf("%s/signup?code=%s", c.siteURL, code)
	textBody := fmt.Sprintf(
		"%s,\n\nYou have been invited to register on the chapter site. Your invitation code is:\n\n%s\n\nSign up at %s%s",
		greeting, code, link, expiry,
	)
	htmlBody := fmt.Sprintf(
		`<p>%s,</p><p>You have been invited to register on the chapter site. Your invitation code is:</p><p><strong>%s</strong></p><p><a href="%s">Complete your registration</a>%s</p>`,
		greeting, code, link, expiry,
	)

	return c.send(ctx, postmarkEmail{
		From:     c.fromEmail,
		To:       email,
		Subject:  "Your chapter invitation code",
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

// SendRemovalNotice warns a member that their dues have lapsed and the
// removal countdown has started.
func (c *Client) SendRemovalNotice(ctx context.Context, email, name string, daysLeft int) error {
	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}

	link := c.siteURL + "/dues"
	textBody := fmt.Sprintf(
		"%s,\n\nOur records show your dues are no longer current. You have %d days to bring your account into good standing before removal from the chapter roster.\n\nPay your dues at %s",
		greeting, daysLeft, link,
	)
	htmlBody := fmt.Sprintf(
		`<p>%s,</p><p>Our records show your dues are no longer current. You have <strong>%d days</strong> to bring your account into good standing before removal from the chapter roster.</p><p><a href="%s">Pay your dues</a></p>`,
		greeting, daysLeft, link,
	)

	return c.send(ctx, postmarkEmail{
		From:     c.fromEmail,
		To:       email,
		Subject:  fmt.Sprintf("Action required: %d days until roster removal", daysLeft),
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

func (c *Client) send(ctx context.Context, payload postmarkEmail) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
