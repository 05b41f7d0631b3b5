package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/nugammasigma/chapter/internal/members/billing"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type StripeWebhookHandler struct {
	Billing     *billing.Client
	DuesService *service.DuesService
}

// ServeHTTP godoc
//
//	@Summary		Stripe Webhook Endpoint
//	@Description	Receive checkout settlement events from Stripe; completed sessions mark the pending payment paid and restore the member's standing
//	@Tags			Dues
//	@Accept			json
//	@Success		200	"Event processed"
//	@Failure		400	"Invalid payload or signature"
//	@Router			/v1/webhooks/stripe [post].
func (h *StripeWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	event, err := h.Billing.ConstructWebhookEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn("webhook signature verification failed", "err", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.settle(ctx, event, true)
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		h.settle(ctx, event, false)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *StripeWebhookHandler) settle(ctx context.Context, event stripe.Event, succeeded bool) {
	log := slogx.FromContext(ctx)

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Error("failed to unmarshal checkout session", "err", err)
		return
	}

	err := h.DuesService.SettleCheckout(ctx, sess.ID, succeeded)
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		// Sessions we never opened (or from another environment) are ignored.
		log.Warn("webhook for unknown checkout session", "session_id", sess.ID)
	case err != nil:
		log.Error("failed to settle checkout", "session_id", sess.ID, "err", err)
	}
}
