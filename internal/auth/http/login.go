package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/service"
	"github.com/praetor-app/praetor/pkg/authsdk"
	"github.com/praetor-app/praetor/pkg/httpx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// toSummary converts a domain account into its wire shape.
func toSummary(acc domain.Account) authsdk.AccountSummary {
	isActive, isPending := acc.Status.Flags()
	return authsdk.AccountSummary{
		ID:        acc.ID,
		FullName:  acc.FullName,
		Email:     acc.Email,
		Role:      acc.Role.String(),
		IsActive:  isActive,
		IsPending: isPending,
	}
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a session token plus the account summary.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse
//	@Failure		401		{object}	httpx.ErrorBody	"Wrong password"
//	@Failure		403		{object}	httpx.ErrorBody	"Account pending approval or deactivated"
//	@Failure		404		{object}	httpx.ErrorBody	"Unknown email"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, acc, err := h.AccountService.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound, "account not found")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "incorrect password")
		return
	case errors.Is(err, service.ErrApprovalPending):
		httpx.WriteError(w, http.StatusForbidden, "account awaiting approval")
		return
	case errors.Is(err, service.ErrAccountDisabled):
		httpx.WriteError(w, http.StatusForbidden, "account deactivated")
		return
	case err != nil:
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token:   token,
		Account: toSummary(acc),
	})
}
