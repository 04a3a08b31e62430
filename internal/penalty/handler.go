package penalty

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jkorir/maziwa/pkg/middleware"
	"github.com/jkorir/maziwa/pkg/response"
	"github.com/jkorir/maziwa/pkg/validator"
)

// Handler handles HTTP requests for penalty account operations
type Handler struct {
	service *Service
}

// NewHandler creates a new penalty handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for penalty endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{collectorId}/account", h.GetAccount)
	r.Get("/{collectorId}/balance", h.GetBalance)
	r.Get("/{collectorId}/transactions", h.GetTransactions)
	r.Post("/{collectorId}/incur", h.Incur)
	r.Post("/{collectorId}/freeze", h.SetFrozen)

	return r
}

// GetAccount handles GET /penalties/{collectorId}/account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	account, err := h.service.GetOrCreateAccount(r.Context(), collectorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, account)
}

// GetBalance handles GET /penalties/{collectorId}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), collectorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, balance)
}

// GetTransactions handles GET /penalties/{collectorId}/transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := h.service.GetTransactionHistory(r.Context(), collectorID, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, transactions)
}

// IncurRequest represents a manual penalty charge outside automated approval
type IncurRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Incur handles POST /penalties/{collectorId}/incur
func (h *Handler) Incur(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	var req IncurRequest
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
		response.Unauthorized(w, "Staff identity required")
		return
	}

	entry, err := h.service.Incur(r.Context(), collectorID, req.Amount, "manual", nil, req.Notes, staffID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, entry)
}

// FreezeRequest represents the request to freeze or unfreeze an account
type FreezeRequest struct {
	Frozen *bool   `json:"frozen" validate:"required"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// SetFrozen handles POST /penalties/{collectorId}/freeze
func (h *Handler) SetFrozen(w http.ResponseWriter, r *http.Request) {
	collectorID, err := strconv.ParseInt(chi.URLParam(r, "collectorId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid collector ID")
		return
	}

	var req FreezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.service.SetFrozen(r.Context(), collectorID, *req.Frozen, req.Reason); err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"frozen": *req.Frozen})
}
