package dashboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/app/queue"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

// Dashboard renders the chef work queue on the terminal and delegates all
// actions to the synchronizer.
type Dashboard struct {
	syncer   *queue.Service
	sessions interfaces.SessionStore
	logger   logger.Logger
	in       *bufio.Reader
	out      io.Writer
}

func New(syncer *queue.Service, sessions interfaces.SessionStore, lgr logger.Logger, in io.Reader, out io.Writer) *Dashboard {
	return &Dashboard{
		syncer:   syncer,
		sessions: sessions,
		logger:   lgr,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run drives the interactive loop until the staff member quits or the
// session ends. It owns the polling goroutine: the poller starts on entry
// and is cancelled on every way out of this method.
//
// A nil return means quit; domain.ErrSessionExpired means the caller should
// show the login screen again (explicit logout or forced expiry).
func (d *Dashboard) Run(ctx context.Context) error {
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go d.syncer.Run(pollCtx)

	fmt.Fprintln(d.out, "Chef Work Queue — type 'help' for commands.")

	for {
		if d.syncer.Expired() {
			fmt.Fprintln(d.out, "Session expired. Please log in again.")
			return domain.ErrSessionExpired
		}

		fmt.Fprint(d.out, "> ")
		line, err := d.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			d.renderQueue()
			continue
		}

		switch fields[0] {
		case "list", "l", "":
			d.renderQueue()

		case "view", "v":
			order, ok := d.pick(fields)
			if !ok {
				continue
			}
			d.renderBill(order)
			if d.confirm("Mark as ready? [y/N]: ") {
				d.markReady(ctx, order.BillNumber)
			}

		case "ready", "r":
			order, ok := d.pick(fields)
			if !ok {
				continue
			}
			d.markReady(ctx, order.BillNumber)

		case "refresh":
			if err := d.syncer.Refresh(ctx); err != nil && !errors.Is(err, domain.ErrSessionExpired) {
				fmt.Fprintf(d.out, "Refresh failed: %v\n", err)
			}
			d.renderQueue()

		case "logout":
			if err := d.sessions.Clear(); err != nil {
				d.logger.Error("session_clear_failed", "Failed to clear stored token", nil, err)
			}
			fmt.Fprintln(d.out, "Logged out.")
			return domain.ErrSessionExpired

		case "quit", "q", "exit":
			return nil

		case "help", "h":
			d.renderHelp()

		default:
			fmt.Fprintf(d.out, "Unknown command %q — type 'help'.\n", fields[0])
		}
	}
}

// pick resolves a 1-based queue position argument into an order.
func (d *Dashboard) pick(fields []string) (domain.Order, bool) {
	if len(fields) < 2 {
		fmt.Fprintln(d.out, "Usage: "+fields[0]+" <number from the list>")
		return domain.Order{}, false
	}
	n, err := strconv.Atoi(fields[1])
	orders := d.syncer.Queue()
	if err != nil || n < 1 || n > len(orders) {
		fmt.Fprintf(d.out, "No bill at position %s.\n", fields[1])
		return domain.Order{}, false
	}
	return orders[n-1], true
}

func (d *Dashboard) markReady(ctx context.Context, billNumber string) {
	err := d.syncer.MarkReady(ctx, billNumber)
	switch {
	case err == nil:
		fmt.Fprintln(d.out, "Bill marked as ready.")
		d.renderQueue()
	case errors.Is(err, domain.ErrOrderNotFound):
		fmt.Fprintln(d.out, "That bill is no longer in the queue.")
	case errors.Is(err, domain.ErrSessionExpired):
		// surfaced at the top of the loop
	default:
		fmt.Fprintf(d.out, "Could not mark ready: %v\n", err)
	}
}

func (d *Dashboard) confirm(label string) bool {
	fmt.Fprint(d.out, label)
	line, err := d.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
