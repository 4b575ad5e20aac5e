package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paging(r)
	search := r.URL.Query().Get("search")

	var status *domain.AccountStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.AccountStatus(s)
		status = &st
	}

	result, err := h.accountService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list accounts", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	account, err := h.accountService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("failed to get account", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create account", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("failed to update account", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Delete archives accounts that still have projects and removes the rest
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	result, err := h.accountService.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("failed to delete account", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AccountHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.AddTransaction(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, service.ErrAccountArchived):
			respondWithError(w, http.StatusConflict, "Account is archived")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid transaction date")
		default:
			h.logger.Error("failed to add transaction", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to add transaction")
		}
		return
	}

	respondJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	transactions, err := h.accountService.ListTransactions(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("failed to list transactions", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}
