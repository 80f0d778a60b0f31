package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/sharugesh2303/chef/internal/domain"
)

func (d *Dashboard) renderQueue() {
	orders := d.syncer.Queue()

	header := fmt.Sprintf("Paid Orders (New) (%d)", len(orders))
	if d.syncer.Syncing() {
		header += "  [refreshing...]"
	}
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, header)
	fmt.Fprintln(d.out, strings.Repeat("-", len(header)))

	if err := d.syncer.LastError(); err != nil {
		fmt.Fprintf(d.out, "! %v — showing last known orders, 'refresh' to retry\n", err)
	}

	if len(orders) == 0 {
		fmt.Fprintln(d.out, "No new bills to prepare right now.")
		return
	}

	for i, o := range orders {
		fmt.Fprintf(d.out, "%2d. BILL #%-8s %-20s %s  %d item(s)\n",
			i+1, o.DisplayNumber(), o.CustomerName(), formatTime(o.OrderDate), o.TotalItems())
	}
}

func (d *Dashboard) renderBill(o domain.Order) {
	fmt.Fprintln(d.out)
	fmt.Fprintf(d.out, "Bill Details #%s\n", o.DisplayNumber())
	fmt.Fprintf(d.out, "Customer: %s\n", o.CustomerName())
	fmt.Fprintf(d.out, "Time:     %s\n", formatTime(o.OrderDate))
	fmt.Fprintf(d.out, "Status:   PAID (Pending Prep)\n")
	fmt.Fprintf(d.out, "Items (%d):\n", o.TotalItems())
	for _, item := range o.Items {
		fmt.Fprintf(d.out, "  %-30s x %d\n", item.Name, item.Quantity)
	}
}

func (d *Dashboard) renderHelp() {
	fmt.Fprintln(d.out, "Commands:")
	fmt.Fprintln(d.out, "  list (l)        show the queue of paid orders, oldest first")
	fmt.Fprintln(d.out, "  view (v) <n>    show bill details, then optionally mark ready")
	fmt.Fprintln(d.out, "  ready (r) <n>   mark the nth bill as ready")
	fmt.Fprintln(d.out, "  refresh         fetch the queue now")
	fmt.Fprintln(d.out, "  logout          clear the session and return to login")
	fmt.Fprintln(d.out, "  quit (q)        exit")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("3:04 PM")
}
