package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "bookingengine/internal/app/outbox"
	infraoutbox "bookingengine/internal/infra/outbox"
)

// Outbox queues event records in memory and doubles as the worker's event
// store so memory mode can still publish to the broker.
type Outbox struct {
	mu    sync.Mutex
	items map[string]*infraoutbox.EventDocument
	order []string
}

func NewOutbox() *Outbox {
	return &Outbox{items: make(map[string]*infraoutbox.EventDocument)}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	doc := &infraoutbox.EventDocument{
		ID:          record.ID,
		Name:        record.Name,
		Payload:     record.Payload,
		OccurredAt:  record.OccurredAt,
		Aggregate:   record.Aggregate,
		Headers:     record.Headers,
		State:       "NEW",
		NextAttempt: time.Now().UTC(),
	}
	o.items[doc.ID] = doc
	o.order = append(o.order, doc.ID)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	return nil
}

func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.EventDocument, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range o.order {
		doc := o.items[id]
		if doc == nil {
			continue
		}
		if doc.State != "NEW" && doc.State != "FAILED" {
			continue
		}
		if doc.NextAttempt.After(now) {
			continue
		}
		doc.State = "CLAIMED"
		doc.ClaimedBy = workerID
		doc.ClaimedAt = now
		copied := *doc
		return &copied, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if doc, ok := o.items[id]; ok {
		doc.State = "SENT"
		doc.SentAt = time.Now().UTC()
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if doc, ok := o.items[id]; ok {
		doc.State = "FAILED"
		doc.NextAttempt = next
		doc.LastError = errMsg
		doc.Attempts++
	}
	return nil
}

// Pending returns undelivered records, oldest first. Test helper.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, 0, len(o.order))
	for _, id := range o.order {
		doc := o.items[id]
		if doc == nil || doc.State == "SENT" {
			continue
		}
		out = append(out, appoutbox.EventRecord{
			ID:         doc.ID,
			Name:       doc.Name,
			Payload:    doc.Payload,
			OccurredAt: doc.OccurredAt,
			Aggregate:  doc.Aggregate,
			Headers:    doc.Headers,
		})
	}
	return out
}

var (
	_ appoutbox.Outbox       = (*Outbox)(nil)
	_ infraoutbox.EventStore = (*Outbox)(nil)
)
