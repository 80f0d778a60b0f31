package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// NewRouter wires the staff API under basePath ("/api" in the standard
// deployment).
func NewRouter(auth interfaces.StaffAuthService, orders interfaces.StaffOrderService, lgr logger.Logger, basePath string) http.Handler {
	h := NewStaffHandler(auth, orders, lgr)

	r := mux.NewRouter()
	api := r.PathPrefix(strings.TrimRight(basePath, "/")).Subrouter()
	api.Use(RecoveryMiddleware(lgr), LoggingMiddleware(lgr))

	api.HandleFunc("/staff/login", h.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(auth, lgr))
	protected.HandleFunc("/staff/orders", h.ListOrders).Methods(http.MethodGet)
	protected.HandleFunc("/admin/orders/{billNumber}/mark-ready", h.MarkReady).Methods(http.MethodPatch)

	return r
}
