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

type ProposalHandler struct {
	proposalService *service.ProposalService
	logger          *zap.Logger
}

func NewProposalHandler(proposalService *service.ProposalService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		logger:          logger,
	}
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paging(r)
	search := r.URL.Query().Get("search")

	var status *domain.ProposalStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.ProposalStatus(s)
		status = &st
	}

	result, err := h.proposalService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list proposals", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list proposals")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ProposalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	proposal, err := h.proposalService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Proposal not found")
			return
		}
		h.logger.Error("failed to get proposal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get proposal")
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, "Invalid proposal dates")
			return
		}
		h.logger.Error("failed to create proposal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create proposal")
		return
	}

	respondJSON(w, http.StatusCreated, proposal)
}

func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var req domain.UpdateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Proposal not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid proposal fields")
		default:
			h.logger.Error("failed to update proposal", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update proposal")
		}
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	if err := h.proposalService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Proposal not found")
			return
		}
		h.logger.Error("failed to delete proposal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete proposal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
