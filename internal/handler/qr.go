package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qrkeep/qrkeep/internal/auth"
	"github.com/qrkeep/qrkeep/internal/handler/dto"
	"github.com/qrkeep/qrkeep/internal/service"
)

// QRHandler handles HTTP requests for QR record operations.
// Every route behind it runs after the session middleware, so the owner
// id always comes from verified token claims.
type QRHandler struct {
	svc    *service.QRService
	logger *slog.Logger
}

// NewQRHandler creates a new QRHandler.
func NewQRHandler(svc *service.QRService, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/qrs.
func (h *QRHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	var req dto.CreateQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	qr, err := h.svc.Create(r.Context(), service.CreateQRInput{
		OwnerID: ownerID,
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
		Color:   req.Color,
		BgColor: req.BgColor,
		Project: req.Project,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("qr_created",
		"qr_id", qr.ID,
		"type", string(qr.Type),
		"has_project", qr.Project != nil,
	)

	writeJSON(w, http.StatusCreated, qr)
}

// List handles GET /api/qrs.
// Returns the caller's full record set, newest first. No pagination.
func (h *QRHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	records, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Summary handles GET /api/qrs/summary.
func (h *QRHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), ownerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSummaryResponse(summary))
}

// Recent handles GET /api/qrs/recent?limit=N.
// Invalid or non-positive limits default to 4; values above 20 clamp.
func (h *QRHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	records, err := h.svc.Recent(r.Context(), ownerID, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Delete handles DELETE /api/qrs/{id}.
func (h *QRHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "record id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id, ownerID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("qr_deleted", "qr_id", id)

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

// handleServiceError maps QR service errors to HTTP responses.
func (h *QRHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleContentRequired):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "title and content are required")
	case errors.Is(err, service.ErrQRNotFound):
		// One message for "missing" and "not yours" so nothing leaks
		writeError(w, http.StatusNotFound, "NOT_FOUND", "record not found or not yours")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
