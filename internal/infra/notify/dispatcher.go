package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"leadmarket/internal/pkg/config"

	"golang.org/x/sync/errgroup"
)

// Dispatcher delivers notifications off the request path. Enqueueing never
// blocks and never fails the caller; delivery errors are logged and dropped.
// A full queue drops the task rather than stalling lead creation.
type Dispatcher struct {
	sms     SMSSender
	email   EmailSender
	queue   chan task
	workers int

	wg       sync.WaitGroup
	stopOnce sync.Once
}

type task struct {
	phone        string
	emailAddr    string
	emailSubject string
	message      string
}

func NewDispatcher(cfg config.NotifyConfig, sms SMSSender, email EmailSender) *Dispatcher {
	return &Dispatcher{
		sms:     sms,
		email:   email,
		queue:   make(chan task, cfg.QueueSize),
		workers: cfg.Workers,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// LeadAlert notifies one matched tradesperson about a new lead.
func (d *Dispatcher) LeadAlert(phone, email, leadTitle, location string, distanceMiles float64) {
	msg := fmt.Sprintf("New lead: %q in %s (%.1f miles away). Log in to view and purchase.", leadTitle, location, distanceMiles)
	d.enqueue(task{
		phone:        phone,
		emailAddr:    email,
		emailSubject: "New lead in your area",
		message:      msg,
	})
}

// PurchaseReceipt confirms a completed lead purchase to the buyer.
func (d *Dispatcher) PurchaseReceipt(phone, leadTitle string, pricePence int64) {
	msg := fmt.Sprintf("Purchase confirmed: %q for %d.%02d. Contact details are now available.", leadTitle, pricePence/100, pricePence%100)
	d.enqueue(task{phone: phone, message: msg})
}

func (d *Dispatcher) enqueue(t task) {
	select {
	case d.queue <- t:
	default:
		slog.Warn("notification queue full, dropping task", "phone", t.phone != "", "email", t.emailAddr != "")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		d.deliver(t)
	}
}

// deliver sends SMS and email for one task in parallel. One channel failing
// never suppresses the other.
func (d *Dispatcher) deliver(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if t.phone != "" {
		g.Go(func() error {
			if err := d.sms.SendSMS(gctx, t.phone, t.message); err != nil {
				slog.Warn("sms delivery failed", "error", err.Error())
			}
			return nil
		})
	}
	if t.emailAddr != "" {
		g.Go(func() error {
			if err := d.email.SendEmail(gctx, t.emailAddr, t.emailSubject, t.message); err != nil {
				slog.Warn("email delivery failed", "error", err.Error())
			}
			return nil
		})
	}

	_ = g.Wait()
}
