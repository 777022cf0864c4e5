package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
)

const DefaultInterval = 20 * time.Second

// PlanSource returns the current plan for the day containing now.
type PlanSource func(ctx context.Context, now time.Time) ([]domain.PlanItem, error)

// Dispatcher polls the plan and sends each due reminder once per day.
type Dispatcher struct {
	source   PlanSource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu        sync.Mutex
	firedDate string
	fired     map[string]bool
}

type DispatcherOption func(*Dispatcher)

func WithInterval(d time.Duration) DispatcherOption {
	return func(di *Dispatcher) {
		if d > 0 {
			di.interval = d
		}
	}
}

func WithClock(now func() time.Time) DispatcherOption {
	return func(di *Dispatcher) { di.now = now }
}

func WithLogger(l *slog.Logger) DispatcherOption {
	return func(di *Dispatcher) {
		if l != nil {
			di.logger = l
		}
	}
}

func NewDispatcher(source PlanSource, notifier Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		source:   source,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
		fired:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run checks immediately, then on every tick until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

// Tick sends the reminders due now and returns how many were delivered. A
// reminder that fails to send is retried on the next tick while it is still
// within its window.
func (d *Dispatcher) Tick(ctx context.Context) int {
	now := d.now()
	plan, err := d.source(ctx, now)
	if err != nil {
		d.logger.WarnContext(ctx, "loading plan for reminders", "error", err)
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if date := now.Format(domain.DateLayout); date != d.firedDate {
		d.firedDate = date
		d.fired = make(map[string]bool)
	}

	sent := 0
	for _, r := range Due(Reminders(plan), now, d.fired) {
		if err := d.notifier.Notify(ctx, r); err != nil {
			d.logger.WarnContext(ctx, "sending reminder", "item_id", r.ItemID, "error", err)
			continue
		}
		d.fired[r.ItemID] = true
		sent++
	}
	return sent
}
