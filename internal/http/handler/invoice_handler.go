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

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paging(r)
	search := r.URL.Query().Get("search")

	var status *domain.InvoiceStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.InvoiceStatus(s)
		status = &st
	}

	result, err := h.invoiceService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list invoices", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list invoices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		h.logger.Error("failed to get invoice", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get invoice")
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, "An invoice with this number already exists")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid invoice dates")
		default:
			h.logger.Error("failed to create invoice", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create invoice")
		}
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var req domain.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Invoice not found")
		case errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, "An invoice with this number already exists")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid invoice dates")
		default:
			h.logger.Error("failed to update invoice", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update invoice")
		}
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		h.logger.Error("failed to delete invoice", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
