package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/response"
)

// Handler handles HTTP requests for audit trail queries
type Handler struct {
	service *Service
}

// NewHandler creates a new audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for audit endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/suspicious", h.ListSuspicious)
	r.Get("/{table}/{recordId}", h.GetTrail)

	return r
}

// GetTrail handles GET /audit/{table}/{recordId}
func (h *Handler) GetTrail(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	entries, err := h.service.GetTrail(r.Context(), table, recordID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// ListSuspicious handles GET /audit/suspicious
func (h *Handler) ListSuspicious(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.RecentSuspiciousActivities(r.Context(), limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}
