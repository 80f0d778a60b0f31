package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// StaffHandler serves the three endpoints the chef dashboard consumes.
type StaffHandler struct {
	auth   interfaces.StaffAuthService
	orders interfaces.StaffOrderService
	logger logger.Logger
}

func NewStaffHandler(auth interfaces.StaffAuthService, orders interfaces.StaffOrderService, lgr logger.Logger) *StaffHandler {
	return &StaffHandler{
		auth:   auth,
		orders: orders,
		logger: lgr,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message    string `json:"message"`
	BillNumber string `json:"billNumber,omitempty"`
}

func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	token, err := h.auth.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Login failed. Invalid credentials."})
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token, Message: "Login successful"})
}

func (h *StaffHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListPaidOrders(r.Context())
	if err != nil {
		h.logger.Error("list_orders_failed", "Failed to list paid orders", nil, err)
		respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to fetch orders"})
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *StaffHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	billNumber := mux.Vars(r)["billNumber"]
	markedBy := staffEmail(r.Context())

	order, err := h.orders.MarkReady(r.Context(), billNumber, markedBy)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, messageResponse{
			Message:    "Order marked as ready",
			BillNumber: order.BillNumber,
		})
	case errors.Is(err, domain.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, messageResponse{Message: "Order not found"})
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		respondJSON(w, http.StatusConflict, messageResponse{Message: "Order is not awaiting preparation"})
	default:
		h.logger.Error("mark_ready_failed", "Failed to mark order ready", map[string]interface{}{
			"bill_number": billNumber,
		}, err)
		respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Failed to mark order ready"})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
