package membersdk

// ErrorResponse is the standard error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// LoginRequest authenticates a member or officer.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// TOTPCode is required when the account has TOTP enabled.
	TOTPCode string `json:"totp_code,omitempty"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Username    string `json:"username"`
	Officer     bool   `json:"officer"`
}

// TOTPEnrollResponse returns the shared secret for the authenticator app.
type TOTPEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TOTPVerifyRequest confirms an enrollment or authorises disabling TOTP.
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}

// InvitationRequest mints a signup code for a prospective member.
type InvitationRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	MemberNumber string `json:"member_number,omitempty"`

	// ExpiresAt is a Unix timestamp; zero means the code never expires.
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// InvitationResponse describes a minted or listed invitation. Code is
// included so officers can resend it out of band.
type InvitationResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	MemberNumber string `json:"member_number,omitempty"`
	Used         bool   `json:"used"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// ValidateResponse is the signup form precheck result.
type ValidateResponse struct {
	Valid     bool   `json:"valid"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// SignupRequest redeems an invitation code and creates the login.
type SignupRequest struct {
	Code     string `json:"code"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse confirms the activated account.
type SignupResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ProvisionRequest pre-creates a placeholder account for a member.
type ProvisionRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	MemberNumber string `json:"member_number,omitempty"`
	Officer      bool   `json:"officer,omitempty"`
}

// MemberResponse is one roster entry with compliance state.
type MemberResponse struct {
	ID           string `json:"id"`
	MemberNumber string `json:"member_number,omitempty"`
	Status       string `json:"status"`
	DuesCurrent  bool   `json:"dues_current"`
	Phone        string `json:"phone,omitempty"`
	LineName     string `json:"line_name,omitempty"`
	LineNumber   string `json:"line_number,omitempty"`

	// DaysUntilRemoval is present only while the member is marked.
	DaysUntilRemoval *int   `json:"days_until_removal,omitempty"`
	RemovalEligible  bool   `json:"removal_eligible,omitempty"`
	RemovalReason    string `json:"removal_reason,omitempty"`
}

// MarkRequest starts the removal countdown for a member.
type MarkRequest struct {
	Reason string `json:"reason"`
}

// SyncResponse summarises a roster import.
type SyncResponse struct {
	Matched   int      `json:"matched"`
	Created   int      `json:"created"`
	Marked    int      `json:"marked"`
	DryRun    bool     `json:"dry_run"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// SweepRequest controls a compliance sweep.
type SweepRequest struct {
	DryRun bool `json:"dry_run,omitempty"`
}

// SweepResponse reports the members removed by a sweep.
type SweepResponse struct {
	Examined int              `json:"examined"`
	DryRun   bool             `json:"dry_run"`
	Removed  []MemberResponse `json:"removed"`
}

// PaymentRequest books a manual dues or assessment payment.
type PaymentRequest struct {
	MemberID    string `json:"member_id"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Note        string `json:"note,omitempty"`
}

// PaymentResponse is one payment record.
type PaymentResponse struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	PaidAt      int64  `json:"paid_at,omitempty"`
}

// CheckoutResponse points the browser at the hosted payment page.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
