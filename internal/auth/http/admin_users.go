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

type AdminUsersHandler struct {
	ApprovalService *service.ApprovalService
}

// HandleList lists accounts for the admin dashboard.
//
//	@Summary		List accounts
//	@Description	Returns all accounts, or only those awaiting approval with ?state=pending.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			state	query		string	false	"Filter, currently only 'pending'"
//	@Success		200		{array}		authsdk.AccountSummary
//	@Failure		401		{object}	httpx.ErrorBody	"Invalid or missing session token"
//	@Failure		403		{object}	httpx.ErrorBody	"Caller is not an administrator"
//	@Router			/v1/admin/users [get].
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var (
		accounts []domain.Account
		err      error
	)
	switch r.URL.Query().Get("state") {
	case "":
		accounts, err = h.ApprovalService.ListAll(ctx)
	case "pending":
		accounts, err = h.ApprovalService.ListPending(ctx)
	default:
		httpx.WriteError(w, http.StatusBadRequest, "unknown state filter")
		return
	}
	if err != nil {
		log.Error("failed to list accounts", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]authsdk.AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, toSummary(acc))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleStatus resolves an account's approval state.
//
//	@Summary		Update account status
//	@Description	Approves or deactivates an account. The pending flag is always cleared
//	@Description	regardless of the submitted value: a reviewed account is active or inactive.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Account id"
//	@Param			body	body		authsdk.StatusUpdateRequest	true	"New state"
//	@Success		200		{object}	authsdk.AccountSummary
//	@Failure		401		{object}	httpx.ErrorBody	"Invalid or missing session token"
//	@Failure		403		{object}	httpx.ErrorBody	"Caller is not an administrator"
//	@Failure		404		{object}	httpx.ErrorBody	"Unknown account id"
//	@Router			/v1/admin/users/{id}/status [put].
func (h *AdminUsersHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	var req authsdk.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// req.IsPending is deliberately ignored; review always resolves it.
	acc, err := h.ApprovalService.SetStatus(ctx, id, req.IsActive)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound, "account not found")
		return
	case err != nil:
		log.Error("failed to update status", "account_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSummary(acc))
}
