// Package membersdk is a small HTTP client for the member service, used by
// chapter tooling and scripted roster jobs.
package membersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the member service. Unauthenticated operations hang off the
// Client directly; Login returns a Session for everything that needs a token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a member service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is an authenticated client carrying a bearer token.
type Session struct {
	client *Client
	token  string
}

// NewSessionFromToken wraps an existing access token, e.g. one minted by a
// cron job's service credential.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, token: accessToken}
}

// Login authenticates and returns a Session plus the raw token response.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", "", req, &out, http.StatusOK); err != nil {
		return nil, LoginResponse{}, err
	}
	return &Session{client: c, token: out.AccessToken}, out, nil
}

// ValidateInvitation prechecks a code and email pair for the signup form.
func (c *Client) ValidateInvitation(ctx context.Context, code, email string) (ValidateResponse, error) {
	var out ValidateResponse
	path := "/v1/signup/validate?code=" + url.QueryEscape(code) + "&email=" + url.QueryEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out, http.StatusOK); err != nil {
		return ValidateResponse{}, err
	}
	return out, nil
}

// Signup redeems an invitation code and activates the account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var out SignupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/signup", "", req, &out, http.StatusCreated); err != nil {
		return SignupResponse{}, err
	}
	return out, nil
}

// CreateInvitation mints a signup code (officer only).
func (s *Session) CreateInvitation(ctx context.Context, req InvitationRequest) (InvitationResponse, error) {
	var out InvitationResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/invitations", s.token, req, &out, http.StatusCreated); err != nil {
		return InvitationResponse{}, err
	}
	return out, nil
}

// ListInvitations returns invitations, optionally including redeemed codes.
func (s *Session) ListInvitations(ctx context.Context, includeUsed bool) ([]InvitationResponse, error) {
	path := "/v1/invitations"
	if includeUsed {
		path += "?include_used=1"
	}
	var out []InvitationResponse
	if err := s.client.doJSON(ctx, http.MethodGet, path, s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ResendInvitation re-delivers an open code to its recipient.
func (s *Session) ResendInvitation(ctx context.Context, invitationID string) error {
	path := "/v1/invitations/" + url.PathEscape(invitationID) + "/resend"
	return s.client.doJSON(ctx, http.MethodPost, path, s.token, nil, nil, http.StatusNoContent)
}

// RevokeInvitation deletes an open code so it can no longer be redeemed.
func (s *Session) RevokeInvitation(ctx context.Context, invitationID string) error {
	path := "/v1/invitations/" + url.PathEscape(invitationID)
	return s.client.doJSON(ctx, http.MethodDelete, path, s.token, nil, nil, http.StatusNoContent)
}

// ListMembers returns the roster with countdown state.
func (s *Session) ListMembers(ctx context.Context) ([]MemberResponse, error) {
	var out []MemberResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/members", s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ProvisionMember pre-creates a placeholder account (officer only).
func (s *Session) ProvisionMember(ctx context.Context, req ProvisionRequest) (MemberResponse, error) {
	var out MemberResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/members", s.token, req, &out, http.StatusCreated); err != nil {
		return MemberResponse{}, err
	}
	return out, nil
}

// MarkMember starts the removal countdown for a member.
func (s *Session) MarkMember(ctx context.Context, memberID, reason string) (MemberResponse, error) {
	var out MemberResponse
	path := "/v1/members/" + url.PathEscape(memberID) + "/mark"
	if err := s.client.doJSON(ctx, http.MethodPost, path, s.token, MarkRequest{Reason: reason}, &out, http.StatusOK); err != nil {
		return MemberResponse{}, err
	}
	return out, nil
}

// ResetMember clears the removal countdown for a member.
func (s *Session) ResetMember(ctx context.Context, memberID string) (MemberResponse, error) {
	var out MemberResponse
	path := "/v1/members/" + url.PathEscape(memberID) + "/reset"
	if err := s.client.doJSON(ctx, http.MethodPost, path, s.token, nil, &out, http.StatusOK); err != nil {
		return MemberResponse{}, err
	}
	return out, nil
}

// SyncRoster uploads a headquarters CSV export. The server requires the
// confirm flag, which the client always sends; dryRun reports what the sync
// would do without writing.
func (s *Session) SyncRoster(ctx context.Context, csv io.Reader, dryRun bool) (SyncResponse, error) {
	target := s.client.BaseURL + "/v1/members/sync?confirm=1"
	if dryRun {
		target += "&dry_run=1"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, csv)
	if err != nil {
		return SyncResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return SyncResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	var out SyncResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return SyncResponse{}, err
	}
	return out, nil
}

// Sweep runs the compliance sweep (officer only).
func (s *Session) Sweep(ctx context.Context, dryRun bool) (SweepResponse, error) {
	var out SweepResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/compliance/sweep", s.token, SweepRequest{DryRun: dryRun}, &out, http.StatusOK); err != nil {
		return SweepResponse{}, err
	}
	return out, nil
}

// ListPayments returns a member's payment history, newest first.
func (s *Session) ListPayments(ctx context.Context, memberID string) ([]PaymentResponse, error) {
	path := "/v1/members/" + url.PathEscape(memberID) + "/payments"
	var out []PaymentResponse
	if err := s.client.doJSON(ctx, http.MethodGet, path, s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordPayment books a manual payment (officer only).
func (s *Session) RecordPayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	var out PaymentResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/dues/payments", s.token, req, &out, http.StatusCreated); err != nil {
		return PaymentResponse{}, err
	}
	return out, nil
}

// StartCheckout opens a hosted dues checkout for the caller's own profile.
func (s *Session) StartCheckout(ctx context.Context) (CheckoutResponse, error) {
	var out CheckoutResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/dues/checkout", s.token, nil, &out, http.StatusOK); err != nil {
		return CheckoutResponse{}, err
	}
	return out, nil
}

// EnrollTOTP starts TOTP enrollment for the caller.
func (s *Session) EnrollTOTP(ctx context.Context) (TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/totp/enroll", s.token, nil, &out, http.StatusOK); err != nil {
		return TOTPEnrollResponse{}, err
	}
	return out, nil
}

// VerifyTOTP confirms enrollment with a live code.
func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.client.doJSON(ctx, http.MethodPost, "/v1/auth/totp/verify", s.token, TOTPVerifyRequest{Code: code}, nil, http.StatusNoContent)
}

// doJSON performs a JSON request/response cycle. A nil out with 204 expected
// skips decoding.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any, expectedStatus int) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, out, expectedStatus)
}

// decodeJSON decodes a response into target, turning non-2xx bodies into a
// typed *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
			apiErr.Description = strings.TrimSpace(string(bodyBytes))
		}
		return apiErr
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
