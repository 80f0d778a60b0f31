package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// Client talks to the canteen backend and translates HTTP failures into the
// typed errors the rest of the dashboard works with.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions interfaces.SessionStore
	logger   logger.Logger
}

func NewClient(baseURL string, sessions interfaces.SessionStore, lgr logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
		logger:   lgr,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// errorResponse covers both error payload shapes the backend emits.
type errorResponse struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Msg
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/staff/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.NetworkError{Op: "login", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := parseErrorMessage(data)
		if msg == "" {
			msg = "login failed"
		}
		c.logger.Debug("login_rejected", msg, map[string]interface{}{"status": resp.StatusCode})
		return "", fmt.Errorf("%s: %w", msg, domain.ErrInvalidCredentials)
	}

	var lr loginResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		return "", &domain.ProtocolError{Op: "login", Reason: "malformed response body"}
	}
	if lr.Token == "" {
		return "", &domain.ProtocolError{Op: "login", Reason: "token missing from response"}
	}

	return lr.Token, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	resp, err := c.authedRequest(ctx, http.MethodGet, "/staff/orders", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: "list orders", Err: err}
	}

	if err := c.checkStatus(resp.StatusCode, data, "list orders"); err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, &domain.ProtocolError{Op: "list orders", Reason: "malformed order list"}
	}

	return orders, nil
}

func (c *Client) MarkReady(ctx context.Context, billNumber string) error {
	path := fmt.Sprintf("/admin/orders/%s/mark-ready", billNumber)
	resp, err := c.authedRequest(ctx, http.MethodPatch, path, strings.NewReader("{}"))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return c.checkStatus(resp.StatusCode, data, "mark ready")
}

// authedRequest issues a bearer-authenticated request. A missing token fails
// with ErrUnauthorized without touching the network.
func (c *Client) authedRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	token, ok := c.sessions.Token()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

func (c *Client) checkStatus(status int, body []byte, op string) error {
	switch {
	case status >= 200 && status <= 299:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == http.StatusNotFound:
		return domain.ErrOrderNotFound
	default:
		msg := parseErrorMessage(body)
		c.logger.Debug("request_failed", op, map[string]interface{}{"status": status, "message": msg})
		return &domain.ServerError{StatusCode: status, Message: msg}
	}
}

func parseErrorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.text()
}

var _ interfaces.OrderGateway = (*Client)(nil)
