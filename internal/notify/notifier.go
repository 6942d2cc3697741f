// Package notify delivers pipeline alerts to operators. Notifications fan out
// to all registered senders (Telegram, Discord) and are filtered by event type
// so operators only receive the alerts they subscribed to.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// Event types emitted by the pipeline.
const (
	EventMomentumDetected = "momentum.detected"
	EventScanCompleted    = "scan.completed"
	EventArchiveCompleted = "archive.completed"
	EventScanFailed       = "scan.failed"
)

// Sender is one delivery channel for notifications.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns the channel identifier (e.g. "telegram").
	Name() string
}

// Notifier dispatches notifications to one or more Senders, filtering by
// event type. An empty allow list passes every event.
type Notifier struct {
	senders []Sender
	events  map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. Only events
// listed in events are forwarded; an empty list allows everything.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		allowed[strings.TrimSpace(e)] = true
	}
	return &Notifier{
		senders: senders,
		events:  allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Notify sends a notification to all senders if the event type is allowed.
func (n *Notifier) Notify(ctx context.Context, event, title, message string) error {
	if len(n.events) > 0 && !n.events[event] {
		n.logger.DebugContext(ctx, "event filtered out",
			slog.String("event", event),
		)
		return nil
	}
	return n.dispatch(ctx, title, message)
}

// dispatch sends to every sender; one sender failing does not stop delivery
// to the rest. Failures are combined into a single error.
func (n *Notifier) dispatch(ctx context.Context, title, message string) error {
	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// FormatMomentumAlert renders the top movers of a scan into a message body
// suitable for chat channels, one line per token.
func FormatMomentumAlert(report domain.ScanReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d token(s) past %.1f%% over %s\n",
		report.Found, report.Threshold, report.Timeframe)
	for _, tok := range report.Tokens {
		fmt.Fprintf(&b, "%s  score %.1f  %s\n", tok.Symbol, tok.Score, tok.Trend)
	}
	return strings.TrimRight(b.String(), "\n")
}
