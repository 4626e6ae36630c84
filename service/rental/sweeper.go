package rentalsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanushkayy/bookstore-web/util/clock"
)

// Notifier delivers a reminder somewhere (log today, mail/SMS later).
type Notifier interface {
	Notify(subject, message string) error
}

type slogNotifier struct{ log *slog.Logger }

func NewSlogNotifier(log *slog.Logger) Notifier { return &slogNotifier{log: log} }

func (n *slogNotifier) Notify(subject, message string) error {
	n.log.Info("notify", "subject", subject, "message", message)
	return nil
}

// reminderWindow is how close to expiry a rental must be before the
// sweeper flags it.
const reminderWindow = 24 * time.Hour

// Sweeper periodically expires overdue rentals and flags upcoming
// expirations. It holds no state of its own.
type Sweeper struct {
	svc      Service
	clock    clock.Clock
	interval time.Duration
	notifier Notifier
	log      *slog.Logger
}

func NewSweeper(svc Service, c clock.Clock, interval time.Duration, n Notifier, log *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, clock: c, interval: interval, notifier: n, log: log}
}

// Run loops until ctx is canceled. Ticks execute synchronously in the
// loop, so a slow tick delays the next one rather than overlapping it.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sweep. Failures are logged and swallowed so the next
// scheduled tick always gets its turn.
func (s *Sweeper) Tick(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("sweeper tick panicked", "panic", p)
		}
	}()

	now := s.clock.Now()
	expired, err := s.svc.SweepExpirations(ctx, now)
	if err != nil {
		s.log.Error("sweep expirations failed", "err", err)
	} else if expired > 0 {
		s.log.Info("expired overdue rentals", "count", expired)
	}

	due, err := s.svc.Upcoming(ctx, reminderWindow, true)
	if err != nil {
		s.log.Error("list upcoming expirations failed", "err", err)
		return
	}
	if len(due) == 0 {
		return
	}

	ids := make([]int64, 0, len(due))
	for _, d := range due {
		msg := fmt.Sprintf("%s: %q expires at %s", d.UserName, d.BookTitle, d.ExpiresAt.Format(time.RFC3339))
		if err := s.notifier.Notify("rental expiring soon", msg); err != nil {
			s.log.Error("reminder notify failed", "rental_id", d.RentalID, "err", err)
			continue
		}
		ids = append(ids, d.RentalID)
	}
	if err := s.svc.MarkReminded(ctx, ids); err != nil {
		s.log.Error("mark reminded failed", "err", err)
	}
}
