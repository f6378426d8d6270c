package email

import (
	"context"
	"sync"
	"time"

	"helpdesk/internal/infrastructure/repository"
	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

const sendAttempts = 3

// Mail is one outbound message queued for delivery.
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
	TicketID *uint
}

// Sender is the transport the dispatcher delivers through.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher delivers mail through a fixed worker pool. Enqueue never
// blocks the caller beyond the buffered queue; every attempt leaves a mail
// log row, so dropped or failed sends stay visible.
type Dispatcher struct {
	sender   Sender
	mailLogs *repository.MailLogRepository
	queue    chan Mail
	workers  int
	log      logger.Interface

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewDispatcher(
	sender Sender,
	mailLogs *repository.MailLogRepository,
	cfg *sharedconfig.EmailConfig,
	log logger.Interface,
) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		sender:   sender,
		mailLogs: mailLogs,
		queue:    make(chan Mail, queueSize),
		workers:  workers,
		log:      log.Named("mail-dispatcher"),
	}
}

// Start launches the worker pool. Workers drain the queue until Stop closes
// it.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		goroutine.SafeGo(d.log, "mail-worker", func() {
			defer d.wg.Done()
			for m := range d.queue {
				d.deliver(m)
			}
		})
	}
	d.log.Infow("mail dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Enqueue queues a message for delivery. Returns false when the queue is
// full; the drop is logged and recorded as a failed send.
func (d *Dispatcher) Enqueue(ctx context.Context, m Mail) bool {
	select {
	case d.queue <- m:
		return true
	default:
	}

	d.log.Warnw("mail queue full, dropping message", "to", m.To, "subject", m.Subject)
	if id, err := d.mailLogs.Create(ctx, m.To, m.Subject, m.TicketID); err == nil {
		_ = d.mailLogs.MarkFailed(ctx, id, errQueueFull, 0)
	}
	return false
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
	d.log.Infow("mail dispatcher stopped")
}

func (d *Dispatcher) deliver(m Mail) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logID, err := d.mailLogs.Create(ctx, m.To, m.Subject, m.TicketID)
	if err != nil {
		d.log.Errorw("failed to create mail log", "to", m.To, "error", err)
	}

	var sendErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		sendErr = d.sender.Send(m.To, m.Subject, m.HTMLBody)
		if sendErr == nil {
			if logID != 0 {
				_ = d.mailLogs.MarkSent(ctx, logID, attempt)
			}
			d.log.Debugw("email sent", "to", m.To, "subject", m.Subject, "attempt", attempt)
			return
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	d.log.Errorw("email delivery failed", "to", m.To, "subject", m.Subject, "error", sendErr)
	if logID != 0 {
		_ = d.mailLogs.MarkFailed(ctx, logID, sendErr, sendAttempts)
	}
}

type queueFullError struct{}

func (queueFullError) Error() string { return "mail queue full" }

var errQueueFull = queueFullError{}
