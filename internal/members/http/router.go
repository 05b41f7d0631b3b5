package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nugammasigma/chapter/internal/members/billing"
	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/jwtx"
	"github.com/nugammasigma/chapter/pkg/slogx"

	_ "github.com/nugammasigma/chapter/api/members" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	InvitationService *service.InvitationService
	RosterService     *service.RosterService
	ComplianceService *service.ComplianceService
	DuesService       *service.DuesService
	Billing           *billing.Client // Optional: only wired when Stripe is configured
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSignup()
	r.registerInvitations()
	r.registerMembers()
	r.registerCompliance()
	r.registerDues()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Chapter Member Service API
//	@version		0.1.0
//	@description	Member management for the chapter: invitation-gated signup, roster and dues tracking, and the removal countdown for lapsed members.
//	@description
//	@description				All tokens are signed using RS256 (RSA-SHA256).
//
//	@contact.name				Nu Gamma Sigma Web Committee
//	@contact.url				https://github.com/nugammasigma/chapter
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP to slow brute force
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/totp/enroll - moderate rate limit by user
	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleTOTPEnroll),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// POST /auth/totp/verify - strict rate limit by user (prevent brute force of TOTP codes)
	securedVerify := httpx.Chain(http.HandlerFunc(h.HandleTOTPVerify),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	r.Mux.Handle("POST /v1/auth/totp/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/auth/totp/verify", securedVerify)
}

func (r *Router) registerSignup() {
	h := &SignupHandler{InvitationService: r.InvitationService}

	// GET /signup/validate - moderate rate limit (signup form precheck)
	r.Mux.Handle("GET /v1/signup/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /signup - strict rate limit by IP (public account creation)
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(http.HandlerFunc(h.HandleActivate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeInvitesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeInvitesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedResend := httpx.Chain(http.HandlerFunc(h.HandleResend),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeInvitesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedRevoke := httpx.Chain(http.HandlerFunc(h.HandleRevoke),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeInvitesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/invitations", securedCreate)
	r.Mux.Handle("GET /v1/invitations", securedList)
	r.Mux.Handle("POST /v1/invitations/{id}/resend", securedResend)
	r.Mux.Handle("DELETE /v1/invitations/{id}", securedRevoke)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{
		RosterService:     r.RosterService,
		ComplianceService: r.ComplianceService,
	}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeRosterRead),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeRosterRead),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedProvision := httpx.Chain(http.HandlerFunc(h.HandleProvision),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeRosterWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedSync := httpx.Chain(http.HandlerFunc(h.HandleSync),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeRosterWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/members", securedList)
	r.Mux.Handle("GET /v1/members/{id}", securedGet)
	r.Mux.Handle("POST /v1/members", securedProvision)
	r.Mux.Handle("POST /v1/members/sync", securedSync)
}

func (r *Router) registerCompliance() {
	h := &ComplianceHandler{ComplianceService: r.ComplianceService}

	securedMark := httpx.Chain(http.HandlerFunc(h.HandleMark),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeComplianceWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedReset := httpx.Chain(http.HandlerFunc(h.HandleReset),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeComplianceWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedSweep := httpx.Chain(http.HandlerFunc(h.HandleSweep),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeComplianceWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/members/{id}/mark", securedMark)
	r.Mux.Handle("POST /v1/members/{id}/reset", securedReset)
	r.Mux.Handle("POST /v1/compliance/sweep", securedSweep)
}

func (r *Router) registerDues() {
	h := &DuesHandler{DuesService: r.DuesService}

	securedRecord := httpx.Chain(http.HandlerFunc(h.HandleRecordPayment),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeDuesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedPayments := httpx.Chain(http.HandlerFunc(h.HandleListPayments),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeDuesWrite),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedCheckout := httpx.Chain(http.HandlerFunc(h.HandleCheckout),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(domain.ScopeDuesCheckout),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/dues/payments", securedRecord)
	r.Mux.Handle("GET /v1/members/{id}/payments", securedPayments)
	r.Mux.Handle("POST /v1/dues/checkout", securedCheckout)

	// Webhook endpoint is only registered when Stripe is configured; it is
	// authenticated by signature, not by bearer token.
	if r.Billing != nil && r.Billing.Configured() {
		webhookHandler := &StripeWebhookHandler{Billing: r.Billing, DuesService: r.DuesService}
		r.Mux.Handle("POST /v1/webhooks/stripe",
			httpx.Chain(webhookHandler,
				httpx.RateLimitByIP(httpx.LenientLimit),
			),
		)
	}
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
