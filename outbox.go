package funkos

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EmailMessage is one outbound email
type EmailMessage struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

// NewFunkoCreatedEmail renders the admin notification for a new figure
func NewFunkoCreatedEmail(to string, funko *Funko) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "New product in store",
		Body: fmt.Sprintf(
			"A new product was created: %s (category %s) at %.2f, id %d.",
			funko.Name, funko.Category, funko.Price, funko.ID,
		),
	}
}

// Outbox decouples email dispatch from request handling. Enqueue never
// blocks: when the channel is full the message is dropped and the caller
// told so. A single worker goroutine drains messages to the Sender; send
// failures are logged and the message abandoned, email here is best
// effort notification, not durable delivery.
type Outbox struct {
	sender  Sender
	queue   chan EmailMessage
	logger  Logger
	timeout time.Duration

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// DefaultOutboxCapacity bounds the pending email queue
const DefaultOutboxCapacity = 64

// NewOutbox creates a stopped outbox; call Start to begin draining
func NewOutbox(sender Sender, capacity int) *Outbox {
	if capacity <= 0 {
		capacity = DefaultOutboxCapacity
	}
	return &Outbox{
		sender:  sender,
		queue:   make(chan EmailMessage, capacity),
		logger:  defLogger{},
		timeout: 30 * time.Second,
		done:    make(chan struct{}),
	}
}

func (o *Outbox) WithLogger(logger Logger) *Outbox {
	o.logger = logger
	return o
}

// Start launches the worker goroutine
func (o *Outbox) Start() {
	o.wg.Add(1)
	go o.run()
}

// Stop shuts the worker down after draining already queued messages
func (o *Outbox) Stop() {
	o.once.Do(func() { close(o.done) })
	o.wg.Wait()
}

// Enqueue offers a message to the queue, reporting false when the queue
// is full or the outbox already stopped
func (o *Outbox) Enqueue(msg EmailMessage) bool {
	select {
	case <-o.done:
		return false
	default:
	}

	select {
	case o.queue <- msg:
		return true
	default:
		return false
	}
}

func (o *Outbox) run() {
	defer o.wg.Done()

	for {
		select {
		case msg := <-o.queue:
			o.deliver(msg)
		case <-o.done:
			// drain what was accepted before the stop
			for {
				select {
				case msg := <-o.queue:
					o.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (o *Outbox) deliver(msg EmailMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	if err := o.sender.Send(ctx, msg); err != nil {
		o.logger.Warn("email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return
	}
	o.logger.Debug("email delivered", "to", msg.To, "subject", msg.Subject)
}
