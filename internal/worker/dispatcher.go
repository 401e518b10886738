package worker

import (
	"context"
	"log"
	"time"

	"github.com/bkalafat/barberly/internal/config"
	"github.com/bkalafat/barberly/internal/domain/outbox"
	"github.com/bkalafat/barberly/internal/models"
	"github.com/bkalafat/barberly/internal/notification"
)

// Dispatcher drains the notification outbox on a fixed interval. Entries
// are processed sequentially in creation order; a failure on one entry
// never stops the batch. Delivery is at-least-once.
type Dispatcher struct {
	outbox outbox.Repository
	sender notification.Sender

	interval   time.Duration
	batchSize  int
	staleAfter time.Duration

	now func() time.Time
}

func NewDispatcher(
	outboxRepo outbox.Repository,
	sender notification.Sender,
	cfg config.Notification,
) *Dispatcher {
	return &Dispatcher{
		outbox:     outboxRepo,
		sender:     sender,
		interval:   cfg.ProcessingInterval,
		batchSize:  cfg.BatchSize,
		staleAfter: cfg.StaleAfter,
		now:        time.Now,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	log.Printf("notify: dispatcher started (interval=%s batch=%d)", d.interval, d.batchSize)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("notify: dispatcher stopped")
			return
		case <-ticker.C:
			d.processBatch(ctx)
		}
	}
}

func (d *Dispatcher) processBatch(ctx context.Context) {
	// Rows stranded in processing by a crash are requeued first, so no
	// entry stays stuck forever.
	if requeued, err := d.outbox.RequeueStale(ctx, d.now().Add(-d.staleAfter)); err != nil {
		log.Printf("notify: stale requeue failed: %v", err)
	} else if requeued > 0 {
		log.Printf("notify: requeued %d stale processing entries", requeued)
	}

	pending, err := d.outbox.GetPending(ctx, d.batchSize)
	if err != nil {
		log.Printf("notify: fetching pending entries failed: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	for i := range pending {
		if ctx.Err() != nil {
			return
		}
		d.processOne(ctx, &pending[i])
	}
}

func (d *Dispatcher) processOne(ctx context.Context, entry *models.NotificationOutbox) {
	if err := outbox.MarkAsProcessing(entry); err != nil {
		log.Printf("notify: entry %s in unexpected status %s, skipping", entry.ID, entry.Status)
		return
	}
	if err := d.outbox.Update(ctx, entry); err != nil {
		log.Printf("notify: marking %s processing failed: %v", entry.ID, err)
		return
	}

	sent := d.sender.SendEmail(entry.RecipientEmail, entry.Subject, entry.Body)

	if sent {
		if err := outbox.MarkAsSent(entry, d.now()); err != nil {
			log.Printf("notify: entry %s: %v", entry.ID, err)
			return
		}
		log.Printf("notify: sent %s to %s (%s)", entry.ID, entry.RecipientEmail, entry.EventType)
	} else {
		outbox.MarkAsFailed(entry, "email send failed", d.now())
		log.Printf("notify: send %s to %s failed (retry %d/%d)",
			entry.ID, entry.RecipientEmail, entry.RetryCount, entry.MaxRetries)
	}

	// A failed outcome write leaves the entry in processing; the stale
	// sweep on a later pass picks it up again.
	if err := d.outbox.Update(ctx, entry); err != nil {
		log.Printf("notify: updating %s after send failed: %v", entry.ID, err)
	}
}
