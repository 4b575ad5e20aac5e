package handler

import (
	"encoding/json"
	"net/http"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/service"
	"go.uber.org/zap"
)

type SyncHandler struct {
	syncService *service.SyncService
	logger      *zap.Logger
}

func NewSyncHandler(syncService *service.SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// SyncProjects merges a client-held project batch into the store and
// reports how many records were inserted versus skipped as duplicates.
func (h *SyncHandler) SyncProjects(w http.ResponseWriter, r *http.Request) {
	var req domain.SyncProjectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.syncService.SyncProjects(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to sync projects", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to sync projects")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
