package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/httpx"
	"github.com/nugammasigma/chapter/pkg/jwtx"
	"github.com/nugammasigma/chapter/pkg/membersdk"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with username and password (plus a TOTP code when enrolled) and receive a JWT access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	membersdk.LoginResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	membersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req membersdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "username and password are required",
		})
		return
	}

	token, user, err := h.AuthService.Login(ctx, req.Username, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTOTPRequired):
			httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeTOTPRequired,
				ErrorDescription: "A TOTP code is required for this account",
			})
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidTOTPCode):
			httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeInvalidGrant,
				ErrorDescription: "Invalid username, password, or code",
			})
		case errors.Is(err, service.ErrAccountInactive):
			httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeAccountInactive,
				ErrorDescription: "Account is not active",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeServerError,
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, membersdk.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(jwtx.DefaultAccessTokenTTL.Seconds()),
		Username:    user.Username,
		Officer:     user.Officer,
	})
}

// HandleTOTPEnroll godoc
//
//	@Summary		TOTP Enrollment Endpoint
//	@Description	Generate a TOTP secret for the authenticated user's authenticator app
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	membersdk.TOTPEnrollResponse	"secret, otpauth_url"
//	@Failure		401	{object}	membersdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/totp/enroll [post].
func (h *AuthHandler) HandleTOTPEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidGrant,
			ErrorDescription: "Authentication required",
		})
		return
	}

	enrollment, err := h.AuthService.EnrollTOTP(ctx, userID)
	if err != nil {
		log.Error("totp enrollment failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to start TOTP enrollment",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, membersdk.TOTPEnrollResponse{
		Secret:     enrollment.Secret,
		OTPAuthURL: enrollment.OTPAuthURL,
	})
}

// HandleTOTPVerify godoc
//
//	@Summary		TOTP Verification Endpoint
//	@Description	Confirm TOTP enrollment with a live code; TOTP is enforced at login from then on
//	@Tags			Auth
//	@Accept			json
//	@Success		204	"TOTP enabled"
//	@Failure		400	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	membersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/totp/verify [post].
func (h *AuthHandler) HandleTOTPVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidGrant,
			ErrorDescription: "Authentication required",
		})
		return
	}

	var req membersdk.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
			Error:            membersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "code is required",
		})
		return
	}

	if err := h.AuthService.VerifyTOTP(ctx, userID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "TOTP code did not verify",
			})
		case errors.Is(err, service.ErrTOTPNotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "No enrollment in progress",
			})
		default:
			log.Error("totp verification failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, membersdk.ErrorResponse{
				Error:            membersdk.ErrorCodeServerError,
				ErrorDescription: "Failed to verify TOTP code",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
