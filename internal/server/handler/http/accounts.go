// Package http provides HTTP handlers exposing the account store to a UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/go-chi/chi/v5"
)

// AccountStore defines the store operations required by the AccountsHandler.
type AccountStore interface {
	// Accounts returns the collection in insertion order.
	Accounts() []models.Account
	// Count returns the collection length.
	Count() int
	// Get returns one account or accounts.ErrNotFound.
	Get(id string) (models.Account, error)
	// Add creates, appends and persists a new empty account.
	Add(ctx context.Context) (models.Account, error)
	// Remove deletes by id; found is false for an unknown id.
	Remove(ctx context.Context, id string) (found bool, err error)
	// Update merges patch into the account; found is false for an unknown id.
	Update(ctx context.Context, id string, patch models.AccountPatch) (found bool, err error)
}

// AccountsHandler handles HTTP requests for account CRUD and validation.
type AccountsHandler struct {
	Store AccountStore
}

type listResponse struct {
	Accounts []models.Account `json:"accounts"`
	Count    int              `json:"count"`
}

type validateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors models.ValidationErrors `json:"errors"`
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.Store.Accounts()
	writeJSON(w, http.StatusOK, listResponse{Accounts: list, Count: len(list)})
}

// Count handles GET /api/accounts/count.
func (h *AccountsHandler) Count(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Store.Count()})
}

// Get handles GET /api/accounts/{id}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.Store.Get(chi.URLParam(r, "id"))
	if errors.Is(err, accounts.ErrNotFound) {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Add handles POST /api/accounts. It takes no body and returns the new
// empty account.
func (h *AccountsHandler) Add(w http.ResponseWriter, r *http.Request) {
	acc, err := h.Store.Add(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// Update handles PATCH /api/accounts/{id}. Only fields present in the body
// are changed; an "id" field is ignored.
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.AccountPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	// The account can be removed between Update and Get.
	acc, err := h.Store.Get(id)
	if errors.Is(err, accounts.ErrNotFound) {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Remove handles DELETE /api/accounts/{id}.
func (h *AccountsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	found, err := h.Store.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate handles POST /api/accounts/validate. The body is an account; the
// response lists which fields failed.
func (h *AccountsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var acc models.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	errs := accounts.ValidateFields(acc)
	writeJSON(w, http.StatusOK, validateResponse{Valid: !errs.Any(), Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
