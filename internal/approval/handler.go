package approval

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/middleware"
	"github.com/jkorir/maziwa/pkg/response"
	"github.com/jkorir/maziwa/pkg/validator"
)

// Handler handles HTTP requests for approval operations
type Handler struct {
	service *Service
}

// NewHandler creates a new approval handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for approval endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Process)
	r.Post("/batch", h.ProcessBatch)
	r.Get("/collection/{collectionId}", h.GetByCollection)

	return r
}

// Process handles POST /approvals
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
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

	record, err := h.service.Process(r.Context(), &req, staffID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, record)
}

// ProcessBatch handles POST /approvals/batch
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
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

	result, err := h.service.ProcessBatch(r.Context(), &req, staffID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetByCollection handles GET /approvals/collection/{collectionId}
func (h *Handler) GetByCollection(w http.ResponseWriter, r *http.Request) {
	collectionID, err := strconv.ParseInt(chi.URLParam(r, "collectionId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collection ID")
		return
	}

	record, err := h.service.GetByCollectionID(r.Context(), collectionID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}
