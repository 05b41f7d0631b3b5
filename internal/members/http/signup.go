package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type SignupHandler struct {
	InvitationService *service.InvitationService
}

// HandleValidate godoc
//
//	@Summary		Signup Precheck Endpoint
//	@Description	Check an invitation code and email pair without consuming the code, so the signup form can prefill names
//	@Tags			Signup
//	@Produce		json
//	@Param			code	query		string						true	"Invitation code"
//	@Param			email	query		string						true	"Email the code was issued to"
//	@Success		200		{object}	membersdk.ValidateResponse	"valid, first_name, last_name"
//	@Failure		400		{object}	membersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/signup/validate [get].
func (h *SignupHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	email := r.URL.Query().Get("email")

	inv, err := h.InvitationService.ValidateCode(ctx, code, email)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to validate invitation")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, membersdk.ValidateResponse{
		Valid:     true,
		FirstName: inv.FirstName,
		LastName:  inv.LastName,
		Email:     inv.Email,
	})
}

// HandleActivate godoc
//
//	@Summary		Signup Endpoint
//	@Description	Redeem an invitation code, create the login, and link the member profile
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.SignupRequest		true	"Code, email, and desired credentials"
//	@Success		201		{object}	membersdk.SignupResponse	"user_id, username"
//	@Failure		400		{object}	membersdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	membersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/signup [post].
func (h *SignupHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req membersdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	user, err := h.InvitationService.ActivateAccount(ctx, req.Code, req.Email, req.Username, req.Password)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to activate account")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, membersdk.SignupResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

// writeInvitationError maps invitation service errors onto the shared error
// envelope. Validation and activation share the same failure modes.
func writeInvitationError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	log := slogx.FromContext(ctx)

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Missing or invalid fields",
		})
	case errors.Is(err, service.ErrInvitationNotFound):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidCode,
			ErrorDescription: "Invitation code is not recognised",
		})
	case errors.Is(err, service.ErrInvitationUsed):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeCodeUsed,
			ErrorDescription: "Invitation code has already been used",
		})
	case errors.Is(err, service.ErrInvitationExpired):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeCodeExpired,
			ErrorDescription: "Invitation code has expired",
		})
	case errors.Is(err, service.ErrEmailMismatch):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeEmailMismatch,
			ErrorDescription: "Email does not match the invitation",
		})
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeUsernameTaken,
			ErrorDescription: "Username is already taken",
		})
	case errors.Is(err, service.ErrProfileLinkConflict):
		httpx.WriteJSON(w, http.StatusConflict, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeProfileConflict,
			ErrorDescription: "Member number is already linked to another account",
		})
	default:
		log.Error("invitation request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: fallback,
		})
	}
}
