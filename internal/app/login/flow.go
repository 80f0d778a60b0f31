package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// Flow collects staff credentials, obtains a token through the gateway and
// hands it to the session store.
type Flow struct {
	gateway  interfaces.OrderGateway
	sessions interfaces.SessionStore
	logger   logger.Logger
	in       *bufio.Reader
	out      io.Writer
}

func NewFlow(gw interfaces.OrderGateway, sessions interfaces.SessionStore, lgr logger.Logger, in io.Reader, out io.Writer) *Flow {
	return &Flow{
		gateway:  gw,
		sessions: sessions,
		logger:   lgr,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run prompts until a login succeeds. Invalid credentials and transport
// failures are shown and the prompt repeats; input EOF aborts.
func (f *Flow) Run(ctx context.Context) error {
	fmt.Fprintln(f.out, "JJ College Canteen — Kitchen Staff Login")

	for {
		email, err := f.prompt("Staff email: ")
		if err != nil {
			return err
		}
		password, err := f.prompt("Password: ")
		if err != nil {
			return err
		}

		token, err := f.gateway.Login(ctx, email, password)
		switch {
		case err == nil:
			if err := f.sessions.Save(token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			f.logger.Info("login_succeeded", "Staff logged in", map[string]interface{}{"email": email})
			fmt.Fprintln(f.out, "Login successful.")
			return nil
		case errors.Is(err, domain.ErrInvalidCredentials):
			fmt.Fprintf(f.out, "Login failed: %v\n", err)
		default:
			var netErr *domain.NetworkError
			if errors.As(err, &netErr) {
				fmt.Fprintln(f.out, "Network connection failed. Server might be down or URL incorrect.")
			} else {
				fmt.Fprintf(f.out, "Login failed: %v\n", err)
			}
		}
	}
}

func (f *Flow) prompt(label string) (string, error) {
	fmt.Fprint(f.out, label)
	line, err := f.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
