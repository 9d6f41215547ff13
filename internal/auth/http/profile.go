package http

import (
	"net/http"

	"github.com/praetor-app/praetor/internal/auth/service"
	"github.com/praetor-app/praetor/pkg/authsdk"
	"github.com/praetor-app/praetor/pkg/httpx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

type ProfileHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP returns the authenticated account's profile.
//
//	@Summary		Get own profile
//	@Description	Returns the profile of the account the session token belongs to.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse
//	@Failure		401	{object}	httpx.ErrorBody	"Invalid or missing session token"
//	@Router			/v1/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	acc, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		log.Warn("failed to load account", "account_id", accountID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		ID:       acc.ID,
		FullName: acc.FullName,
		Email:    acc.Email,
		Role:     acc.Role.String(),
	})
}
