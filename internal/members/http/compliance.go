package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type ComplianceHandler struct {
	ComplianceService *service.ComplianceService
}

// HandleMark godoc
//
//	@Summary		Mark Member Endpoint
//	@Description	Start the removal countdown for a member; marking an already-marked member does not reset the clock
//	@Tags			Compliance
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Member ID"
//	@Param			request	body		membersdk.MarkRequest	true	"Reason for the mark"
//	@Success		200		{object}	membersdk.MemberResponse
//	@Failure		404		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/mark [post].
func (h *ComplianceHandler) HandleMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req membersdk.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	member, err := h.ComplianceService.MarkForRemoval(ctx, r.PathValue("id"), req.Reason)
	if err != nil {
		writeComplianceError(ctx, w, err, "Failed to mark member")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(service.Standing(member, time.Now())))
}

// HandleReset godoc
//
//	@Summary		Reset Countdown Endpoint
//	@Description	Clear a member's removal mark and countdown
//	@Tags			Compliance
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{object}	membersdk.MemberResponse
//	@Failure		404	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/reset [post].
func (h *ComplianceHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	member, err := h.ComplianceService.ClearRemoval(ctx, r.PathValue("id"))
	if err != nil {
		writeComplianceError(ctx, w, err, "Failed to reset countdown")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(service.Standing(member, time.Now())))
}

// HandleSweep godoc
//
//	@Summary		Compliance Sweep Endpoint
//	@Description	Remove every member whose grace period has fully elapsed; dry_run reports candidates without deleting
//	@Tags			Compliance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.SweepRequest	false	"Sweep options"
//	@Success		200		{object}	membersdk.SweepResponse	"examined, removed"
//	@Failure		500		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/compliance/sweep [post].
func (h *ComplianceHandler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req membersdk.SweepRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid JSON body",
			})
			return
		}
	}

	result, err := h.ComplianceService.SweepExpired(ctx, req.DryRun)
	if err != nil {
		log.Error("sweep failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to run sweep",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSweepResponse(result))
}

func writeComplianceError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	log := slogx.FromContext(ctx)

	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeNotFound,
			ErrorDescription: "Member not found",
		})
	case errors.Is(err, service.ErrStatusProtected):
		httpx.WriteJSON(w, http.StatusConflict, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Member's status is protected from removal",
		})
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Missing or invalid fields",
		})
	default:
		log.Error("compliance request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: fallback,
		})
	}
}
