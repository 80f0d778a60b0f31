package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canteenhttp "github.com/sharugesh2303/chef/internal/adapter/http"
	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/adapter/memory"
	"github.com/sharugesh2303/chef/internal/app/orders"
	"github.com/sharugesh2303/chef/internal/app/staff"
	"github.com/sharugesh2303/chef/internal/domain"
)

type apiFixture struct {
	handler http.Handler
	repo    *memory.OrderRepository
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()

	lgr := logger.NewWithWriter("test", io.Discard, false)

	staffRepo := memory.NewStaffRepository()
	member, err := domain.NewStaff("Head Chef", "chef@jjcanteen.local", "letmecook")
	require.NoError(t, err)
	require.NoError(t, staffRepo.Create(context.Background(), member))

	orderRepo := memory.NewOrderRepository()

	authSvc := staff.NewService(staffRepo, memory.NewTokenStore(), lgr)
	orderSvc := orders.NewService(orderRepo, nil, lgr)

	return &apiFixture{
		handler: canteenhttp.NewRouter(authSvc, orderSvc, lgr, "/api"),
		repo:    orderRepo,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) login(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/staff/login", "", map[string]string{
		"email":    "chef@jjcanteen.local",
		"password": "letmecook",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (f *apiFixture) seedOrder(t *testing.T, bill string, status domain.Status, placed time.Time) {
	t.Helper()

	order := &domain.Order{
		BillNumber:  bill,
		StudentName: "Ravi",
		Status:      status,
		OrderDate:   placed,
		Items:       []domain.OrderItem{{Name: "Dosa", Quantity: 2}},
	}
	require.NoError(t, f.repo.Create(context.Background(), order))
}

func TestLoginIssuesToken(t *testing.T) {
	api := newAPI(t)

	token := api.login(t)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/api/staff/login", "", map[string]string{
		"email":    "chef@jjcanteen.local",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginUnknownEmailIs401(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/api/staff/login", "", map[string]string{
		"email":    "nobody@jjcanteen.local",
		"password": "letmecook",
	})

	// Indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestOrdersRequireAuth(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodGet, "/api/staff/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/staff/orders", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired")
}

func TestListOrdersReturnsOnlyPaid(t *testing.T) {
	api := newAPI(t)
	placed := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	api.seedOrder(t, "JJ1001", domain.StatusPaid, placed)
	api.seedOrder(t, "JJ1002", domain.StatusPending, placed.Add(time.Minute))
	api.seedOrder(t, "JJ1003", domain.StatusReady, placed.Add(2*time.Minute))

	token := api.login(t)
	rec := api.do(t, http.MethodGet, "/api/staff/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "JJ1001", got[0].BillNumber)
	assert.Equal(t, domain.StatusPaid, got[0].Status)
}

func TestListOrdersEmptyQueueIsEmptyArray(t *testing.T) {
	api := newAPI(t)

	token := api.login(t)
	rec := api.do(t, http.MethodGet, "/api/staff/orders", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "clients expect a list, not null")
}

func TestMarkReadyTransitionsOrder(t *testing.T) {
	api := newAPI(t)
	api.seedOrder(t, "JJ1001", domain.StatusPaid, time.Now())

	token := api.login(t)
	rec := api.do(t, http.MethodPatch, "/api/admin/orders/JJ1001/mark-ready", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order marked as ready")

	stored, err := api.repo.FindByBillNumber(context.Background(), "JJ1001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stored.Status)
	assert.NotNil(t, stored.ReadyAt)
}

func TestMarkReadyUnknownBillIs404(t *testing.T) {
	api := newAPI(t)

	token := api.login(t)
	rec := api.do(t, http.MethodPatch, "/api/admin/orders/JJ9999/mark-ready", token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestMarkReadyTwiceIsConflict(t *testing.T) {
	api := newAPI(t)
	api.seedOrder(t, "JJ1001", domain.StatusPaid, time.Now())

	token := api.login(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPatch, "/api/admin/orders/JJ1001/mark-ready", token, nil).Code)

	rec := api.do(t, http.MethodPatch, "/api/admin/orders/JJ1001/mark-ready", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMarkReadyUnpaidBillIsConflict(t *testing.T) {
	api := newAPI(t)
	api.seedOrder(t, "JJ1001", domain.StatusPending, time.Now())

	token := api.login(t)
	rec := api.do(t, http.MethodPatch, "/api/admin/orders/JJ1001/mark-ready", token, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
