// Package notify implements the fire-and-forget customer mail path: a
// bounded in-memory queue drained by worker goroutines. Delivery failures
// are logged and never surfaced to the code that enqueued the message.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrQueueFull is returned when the queue cannot accept another message.
// Callers treat it as a logging concern, not a failure of their own work.
var ErrQueueFull = errors.New("notification queue is full")

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher owns the queue and the workers draining it.
type Dispatcher struct {
	mailer  Mailer
	queue   chan Message
	workers int

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// worker count.
func NewDispatcher(mailer Mailer, queueSize, workers int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		mailer:  mailer,
		queue:   make(chan Message, queueSize),
		workers: workers,
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("dispatcher is already running")
	}
	d.running = true
	d.mu.Unlock()

	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			d.run(workerCtx, id)
		}(i + 1)
	}

	log.Printf("[notify] started %d workers", d.workers)
	return nil
}

// Stop cancels the workers and waits for in-flight deliveries, giving up
// after the context deadline. Queued but undelivered messages are dropped;
// the contract is at-most-once.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue hands a message to the queue without blocking. A full queue is
// reported as ErrQueueFull so the caller can log it.
func (d *Dispatcher) Enqueue(msg Message) error {
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := d.mailer.Send(sendCtx, msg); err != nil {
				log.Printf("[notify] worker %d failed to send to %s: %v", id, msg.To, err)
			}
			cancel()
		}
	}
}

// SendActivation queues the account confirmation email. The link works once.
func (d *Dispatcher) SendActivation(publicHost, email, code string) {
	link := fmt.Sprintf("http://%s/api/v1/accounts/activate/%s/", publicHost, code)
	msg := Message{
		To:      email,
		Subject: "Activate your account",
		Body: "To activate your account follow the link below:\n" +
			link + "\nThe link works only once!",
	}
	if err := d.Enqueue(msg); err != nil {
		log.Printf("[notify] dropping activation mail for %s: %v", email, err)
	}
}

// SendOrderCreated queues the order confirmation email with the order
// identity and total. Dispatch failures never affect the placed order.
func (d *Dispatcher) SendOrderCreated(email, orderID, totalSum string) {
	msg := Message{
		To:      email,
		Subject: "Your order has been created",
		Body: fmt.Sprintf("Thank you for your order!\nOrder number: %s\nTotal: %s",
			orderID, totalSum),
	}
	if err := d.Enqueue(msg); err != nil {
		log.Printf("[notify] dropping order mail for %s: %v", email, err)
	}
}
