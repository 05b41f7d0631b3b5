package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type DuesHandler struct {
	DuesService *service.DuesService
}

// HandleRecordPayment godoc
//
//	@Summary		Record Payment Endpoint
//	@Description	Book a manual payment (cash, check, remitted to HQ) as paid; dues payments restore the member's standing and clear any removal mark
//	@Tags			Dues
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.PaymentRequest	true	"Payment details"
//	@Success		201		{object}	membersdk.PaymentResponse
//	@Failure		400		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/dues/payments [post].
func (h *DuesHandler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req membersdk.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	paymentType, ok := domain.ParsePaymentType(req.Type)
	if !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Unknown payment type",
		})
		return
	}

	payment, err := h.DuesService.RecordPayment(ctx, req.MemberID, req.AmountCents, paymentType, req.Note)
	if err != nil {
		writeDuesError(ctx, w, err, "Failed to record payment")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

// HandleListPayments godoc
//
//	@Summary		Payment History Endpoint
//	@Description	List a member's payment records, newest first
//	@Tags			Dues
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{array}		membersdk.PaymentResponse
//	@Failure		404	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/payments [get].
func (h *DuesHandler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payments, err := h.DuesService.ListPayments(ctx, r.PathValue("id"))
	if err != nil {
		writeDuesError(ctx, w, err, "Failed to list payments")
		return
	}

	out := make([]membersdk.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCheckout godoc
//
//	@Summary		Dues Checkout Endpoint
//	@Description	Open a hosted checkout session for the caller's own dues and return the payment page URL
//	@Tags			Dues
//	@Produce		json
//	@Success		200	{object}	membersdk.CheckoutResponse	"url"
//	@Failure		404	{object}	membersdk.ErrorResponse		"error, error_description"
//	@Failure		502	{object}	membersdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/dues/checkout [post].
func (h *DuesHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidGrant,
			ErrorDescription: "Authentication required",
		})
		return
	}

	url, err := h.DuesService.StartCheckoutForUser(ctx, userID)
	if err != nil {
		writeDuesError(ctx, w, err, "Failed to start checkout")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, membersdk.CheckoutResponse{URL: url})
}

func writeDuesError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	log := slogx.FromContext(ctx)

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Missing or invalid fields",
		})
	case errors.Is(err, service.ErrMemberNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeNotFound,
			ErrorDescription: "Member not found",
		})
	case errors.Is(err, service.ErrCheckoutFailed):
		httpx.WriteJSON(w, http.StatusBadGateway, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Payment processor is unavailable",
		})
	default:
		log.Error("dues request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: fallback,
		})
	}
}
