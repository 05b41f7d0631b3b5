package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Mint Invitation Endpoint
//	@Description	Mint a single-use signup code for a prospective member and email it when a mailer is configured
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.InvitationRequest		true	"Recipient details"
//	@Success		201		{object}	membersdk.InvitationResponse	"id, code, email"
//	@Failure		400		{object}	membersdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req membersdk.InvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	params := service.CreateInvitationParams{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MemberNumber: req.MemberNumber,
		Notes:        req.Notes,
	}
	if req.ExpiresAt > 0 {
		t := time.Unix(req.ExpiresAt, 0).UTC()
		params.ExpiresAt = &t
	}
	if userID, ok := httpx.UserIDFromContext(ctx); ok {
		params.CreatedBy = userID
	}

	inv, err := h.InvitationService.CreateInvitation(ctx, params)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to create invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

// HandleList godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List outstanding invitations; pass include_used=1 to include redeemed codes
//	@Tags			Invitations
//	@Produce		json
//	@Param			include_used	query		string	false	"Include redeemed codes"
//	@Success		200				{array}		membersdk.InvitationResponse
//	@Failure		500				{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	includeUsed := r.URL.Query().Get("include_used") != ""
	invitations, err := h.InvitationService.ListInvitations(ctx, includeUsed)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to list invitations")
		return
	}

	out := make([]membersdk.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, toInvitationResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleResend godoc
//
//	@Summary		Resend Invitation Endpoint
//	@Description	Resend an unused invitation code to its recipient
//	@Tags			Invitations
//	@Success		204	"Invitation resent"
//	@Failure		400	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InvitationService.ResendInvitation(ctx, r.PathValue("id")); err != nil {
		writeInvitationError(ctx, w, err, "Failed to resend invitation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation Endpoint
//	@Description	Delete an open invitation so the code can no longer be redeemed
//	@Tags			Invitations
//	@Success		204	"Invitation revoked"
//	@Failure		400	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InvitationService.RevokeInvitation(ctx, r.PathValue("id")); err != nil {
		writeInvitationError(ctx, w, err, "Failed to revoke invitation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
