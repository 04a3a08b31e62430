package variance

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/middleware"
	"github.com/jkorir/maziwa/pkg/response"
	"github.com/jkorir/maziwa/pkg/validator"
)

// Handler handles HTTP requests for variance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new variance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for variance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/preview", h.Preview)
	r.Get("/bands", h.ListBands)
	r.Post("/bands", h.CreateBand)
	r.Delete("/bands/{id}", h.DeactivateBand)

	return r
}

// Preview handles POST /variance/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		response.FromError(w, err)
		return
	}

	preview, err := h.service.Preview(r.Context(), req.CollectedLiters, req.ReceivedLiters)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, preview)
}

// ListBands handles GET /variance/bands
func (h *Handler) ListBands(w http.ResponseWriter, r *http.Request) {
	bands, err := h.service.ListBands(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, bands)
}

// CreateBand handles POST /variance/bands
func (h *Handler) CreateBand(w http.ResponseWriter, r *http.Request) {
	var req CreateBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		response.FromError(w, err)
		return
	}

	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		staffID = 1
	}

	band, err := h.service.CreateBand(r.Context(), &req, staffID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, band)
}

// DeactivateBand handles DELETE /variance/bands/{id}
func (h *Handler) DeactivateBand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid band ID")
		return
	}

	if err := h.service.DeactivateBand(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"deactivated": true})
}
