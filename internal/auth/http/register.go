package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/praetor-app/praetor/internal/auth/service"
	"github.com/praetor-app/praetor/pkg/authsdk"
	"github.com/praetor-app/praetor/pkg/httpx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Description	Creates a pending member account. An administrator must approve it before login works.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	authsdk.AccountSummary
//	@Failure		400		{object}	httpx.ErrorBody	"Invalid body or password mismatch"
//	@Failure		409		{object}	httpx.ErrorBody	"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "full_name, email and password are required")
		return
	}

	acc, err := h.AccountService.Register(ctx, req.FullName, req.Email, req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "passwords do not match")
		return
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email already registered")
		return
	case err != nil:
		log.Error("register failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSummary(acc))
}
