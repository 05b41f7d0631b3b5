package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nugammasigma/chapter/internal/members/roster"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type MembersHandler struct {
	RosterService     *service.RosterService
	ComplianceService *service.ComplianceService
}

// HandleList godoc
//
//	@Summary		Roster Endpoint
//	@Description	List every member with their dues standing and removal countdown
//	@Tags			Members
//	@Produce		json
//	@Success		200	{array}		membersdk.MemberResponse
//	@Failure		500	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	standings, err := h.ComplianceService.ListStandings(ctx)
	if err != nil {
		log.Error("failed to list members", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list members",
		})
		return
	}

	out := make([]membersdk.MemberResponse, 0, len(standings))
	for _, st := range standings {
		out = append(out, toMemberResponse(st))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Member Detail Endpoint
//	@Description	Fetch one member with their dues standing and removal countdown
//	@Tags			Members
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{object}	membersdk.MemberResponse
//	@Failure		404	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members/{id} [get].
func (h *MembersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	standing, err := h.RosterService.GetMember(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeNotFound,
				ErrorDescription: "Member not found",
			})
			return
		}
		log.Error("failed to fetch member", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch member",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(standing))
}

// HandleProvision godoc
//
//	@Summary		Provision Member Endpoint
//	@Description	Pre-create an inactive placeholder account and its member profile ahead of the member's own signup
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.ProvisionRequest	true	"Placeholder account details"
//	@Success		201		{object}	membersdk.MemberResponse
//	@Failure		400		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members [post].
func (h *MembersHandler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req membersdk.ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	params := service.ProvisionMemberParams{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MemberNumber: req.MemberNumber,
		Officer:      req.Officer,
	}
	if userID, ok := httpx.UserIDFromContext(ctx); ok {
		params.CreatedBy = userID
	}

	user, err := h.RosterService.ProvisionMember(ctx, params)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to provision member")
		return
	}

	standing, err := h.RosterService.GetMemberByUser(ctx, user.ID)
	if err != nil {
		writeInvitationError(ctx, w, err, "Failed to provision member")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMemberResponse(standing))
}

// HandleSync godoc
//
//	@Summary		Roster Sync Endpoint
//	@Description	Upload the headquarters member list CSV; members absent from the list are marked for removal, unknown member numbers become unlinked profiles
//	@Tags			Members
//	@Accept			plain
//	@Produce		json
//	@Param			confirm	query		string	true	"Must be set; acknowledges that absent members start the removal countdown"
//	@Param			dry_run	query		string	false	"Report what the sync would do without writing"
//	@Success		200		{object}	membersdk.SyncResponse	"matched, created, marked, dry_run"
//	@Failure		400		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members/sync [post].
func (h *MembersHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if r.URL.Query().Get("confirm") == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Sync requires the confirm flag",
		})
		return
	}
	dryRun := r.URL.Query().Get("dry_run") != ""

	rows, err := roster.ParseCSV(r.Body)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	report, err := h.RosterService.SyncRoster(ctx, rows, dryRun)
	if err != nil {
		log.Error("roster sync failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to sync roster",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, membersdk.SyncResponse{
		Matched:   report.Matched,
		Created:   report.Created,
		Marked:    report.Marked,
		DryRun:    report.DryRun,
		RowErrors: report.RowErrors,
	})
}
