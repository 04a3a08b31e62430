package rate

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/middleware"
	"github.com/jkorir/maziwa/pkg/response"
	"github.com/jkorir/maziwa/pkg/validator"
)

// Handler handles HTTP requests for milk rate operations
type Handler struct {
	service *Service
}

// NewHandler creates a new rate handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for rate endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/current", h.GetCurrent)
	r.Get("/history", h.GetHistory)
	r.Post("/", h.Create)

	return r
}

// GetCurrent handles GET /rates/current
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	rate, err := h.service.GetCurrentRate(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, rate)
}

// GetHistory handles GET /rates/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rates, err := h.service.GetHistory(r.Context(), limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, rates)
}

// Create handles POST /rates
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRateRequest
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

	rate, err := h.service.SetRate(r.Context(), req.RatePerLiter, staffID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, rate)
}
