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

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paging(r)
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	result, err := h.expenseService.List(r.Context(), page, pageSize, search, category)
	if err != nil {
		h.logger.Error("failed to list expenses", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list expenses")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ExpenseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Expense not found")
			return
		}
		h.logger.Error("failed to get expense", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get expense")
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.expenseService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, "Invalid expense date")
			return
		}
		h.logger.Error("failed to create expense", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var req domain.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	expense, err := h.expenseService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Expense not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid expense date")
		default:
			h.logger.Error("failed to update expense", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update expense")
		}
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Expense not found")
			return
		}
		h.logger.Error("failed to delete expense", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
