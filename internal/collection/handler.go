package collection

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/response"
	"github.com/jkorir/maziwa/pkg/validator"
)

// Handler handles HTTP requests for collection operations
type Handler struct {
	service *Service
}

// NewHandler creates a new collection handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for collection endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/pending", h.ListPending)
	r.Get("/{id}", h.GetByID)
	r.Get("/collector/{collectorId}", h.ListByCollector)

	return r
}

// Create handles POST /collections
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		response.FromError(w, err)
		return
	}

	collection, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, collection)
}

// GetByID handles GET /collections/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collection ID")
		return
	}

	collection, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, collection)
}

// ListByCollector handles GET /collections/collector/{collectorId}
func (h *Handler) ListByCollector(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	collections, total, err := h.service.ListByCollector(r.Context(), collectorID, page, perPage)
	if err != nil {
		response.FromError(w, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, collections, meta)
}

// ListPending handles GET /collections/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	collections, err := h.service.ListPendingApproval(r.Context(), limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, collections)
}
