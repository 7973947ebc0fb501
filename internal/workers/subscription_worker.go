package workers

import (
	"context"
	"time"

	"github.com/sandy-the-earth/nfc-backend/internal/logger"
	"github.com/sandy-the-earth/nfc-backend/internal/services"
)

// SubscriptionWorker sweeps subscriptions whose end date has passed and
// flips them to expired. Expiry is also applied lazily on read; the sweep
// keeps admin listings and stats honest for profiles nobody is fetching.
type SubscriptionWorker struct {
	subs     services.SubscriptionService
	interval time.Duration
}

func NewSubscriptionWorker(subs services.SubscriptionService, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{subs: subs, interval: interval}
}

// Run blocks until the context is cancelled. One sweep happens immediately
// so a restart does not wait a full interval to catch up.
func (w *SubscriptionWorker) Run(ctx context.Context) {
	logger.Info("subscription worker started", "interval", w.interval.String())

	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SubscriptionWorker) sweep() {
	expired, err := w.subs.ExpireOverdue(time.Now())
	if err != nil {
		logger.WorkerLog("subscription", "expire_overdue", err)
		return
	}
	if expired > 0 {
		logger.Info("subscriptions expired", "count", expired)
	}
}
