package membersdk

import "fmt"

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidCode       = "invalid_code"
	ErrorCodeCodeUsed          = "code_used"
	ErrorCodeCodeExpired       = "code_expired"
	ErrorCodeEmailMismatch     = "email_mismatch"
	ErrorCodeUsernameTaken     = "username_taken"
	ErrorCodeProfileConflict   = "profile_conflict"
	ErrorCodeInvalidGrant      = "invalid_grant"
	ErrorCodeTOTPRequired      = "totp_required"
	ErrorCodeAccountInactive   = "account_inactive"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeServerError       = "server_error"
)

// APIError is a typed error parsed from an ErrorResponse body.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}
