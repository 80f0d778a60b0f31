package login

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
)

type fakeGateway struct {
	loginFn func(ctx context.Context, email, password string) (string, error)
	calls   int
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	f.calls++
	return f.loginFn(ctx, email, password)
}

func (f *fakeGateway) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) MarkReady(ctx context.Context, billNumber string) error {
	return errors.New("not used")
}

type fakeSessions struct {
	token string
	has   bool
}

func (f *fakeSessions) Save(token string) error { f.token, f.has = token, true; return nil }
func (f *fakeSessions) Token() (string, bool)   { return f.token, f.has }
func (f *fakeSessions) Clear() error            { f.token, f.has = "", false; return nil }

func newFlow(gw *fakeGateway, sessions *fakeSessions, input string) (*Flow, *bytes.Buffer) {
	out := &bytes.Buffer{}
	lgr := logger.NewWithWriter("test", io.Discard, false)
	return NewFlow(gw, sessions, lgr, strings.NewReader(input), out), out
}

func TestSuccessfulLoginStoresToken(t *testing.T) {
	gw := &fakeGateway{loginFn: func(ctx context.Context, email, password string) (string, error) {
		assert.Equal(t, "chef@jjcanteen.local", email)
		assert.Equal(t, "letmecook", password)
		return "tok-1", nil
	}}
	sessions := &fakeSessions{}
	flow, out := newFlow(gw, sessions, "chef@jjcanteen.local\nletmecook\n")

	require.NoError(t, flow.Run(context.Background()))

	token, ok := sessions.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.Contains(t, out.String(), "Login successful")
}

func TestInvalidCredentialsReprompts(t *testing.T) {
	gw := &fakeGateway{}
	gw.loginFn = func(ctx context.Context, email, password string) (string, error) {
		if password != "letmecook" {
			return "", domain.ErrInvalidCredentials
		}
		return "tok-1", nil
	}
	sessions := &fakeSessions{}
	flow, out := newFlow(gw, sessions, "chef@jjcanteen.local\nwrong\nchef@jjcanteen.local\nletmecook\n")

	require.NoError(t, flow.Run(context.Background()))

	assert.Equal(t, 2, gw.calls)
	assert.Contains(t, out.String(), "Login failed")
	_, ok := sessions.Token()
	assert.True(t, ok)
}

func TestNetworkFailureRepromptsWithHint(t *testing.T) {
	attempt := 0
	gw := &fakeGateway{}
	gw.loginFn = func(ctx context.Context, email, password string) (string, error) {
		attempt++
		if attempt == 1 {
			return "", &domain.NetworkError{Op: "login", Err: errors.New("connection refused")}
		}
		return "tok-1", nil
	}
	flow, out := newFlow(gw, &fakeSessions{}, "a@b\npw\na@b\npw\n")

	require.NoError(t, flow.Run(context.Background()))
	assert.Contains(t, out.String(), "Network connection failed")
}

func TestInputEOFAborts(t *testing.T) {
	gw := &fakeGateway{loginFn: func(ctx context.Context, email, password string) (string, error) {
		return "tok-1", nil
	}}
	sessions := &fakeSessions{}
	flow, _ := newFlow(gw, sessions, "chef@jjcanteen.local")

	err := flow.Run(context.Background())

	assert.Error(t, err)
	assert.Zero(t, gw.calls)
	_, ok := sessions.Token()
	assert.False(t, ok)
}
