// Package notify turns slot state changes into best-effort mail delivery.
// Services publish a StateChanged event after their conditional write
// commits; a single worker drains the queue and talks to the mail service.
// Delivery failure is logged and dropped, never propagated back into the
// state machine.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sgruwertal/dienst-service/repos/resend"
)

// Kind names the transition that fired the event.
type Kind string

const (
	KindClaimConfirmed        Kind = "claim_confirmed"
	KindCancellationRequested Kind = "cancellation_requested"
	KindClaimReleased         Kind = "claim_released"
)

// StateChanged is the post-commit event for one slot transition.
type StateChanged struct {
	Kind   Kind
	SlotID int64
	Mail   resend.SlotMail
}

// Mailer is the slice of the mail service the dispatcher needs.
type Mailer interface {
	SendConfirmation(ctx context.Context, mail resend.SlotMail) error
	SendCancellationRequested(ctx context.Context, mail resend.SlotMail) error
	SendReleased(ctx context.Context, mail resend.SlotMail) error
}

const sendTimeout = 15 * time.Second

// Dispatcher owns the event queue and the delivery worker.
type Dispatcher struct {
	mailer Mailer
	log    *zap.Logger
	events chan StateChanged
	stop   chan struct{}
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue size.
func NewDispatcher(mailer Mailer, log *zap.Logger, buffer int) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		log:    log,
		events: make(chan StateChanged, buffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	go d.run()
}

// Stop waits until queued events are delivered, then returns. Stop must be
// called at most once; Publish stays safe to call afterwards and reports
// the event as dropped.
func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
}

// Publish enqueues an event without blocking. The return value is advisory:
// false means the notification is lost (queue full, or the dispatcher has
// been stopped), which the caller may surface but must not treat as an
// operation failure.
func (d *Dispatcher) Publish(event StateChanged) bool {
	select {
	case <-d.stop:
		d.log.Warn("dispatcher stopped, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.Int64("slot_id", event.SlotID))
		return false
	default:
	}

	select {
	case d.events <- event:
		return true
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.Int64("slot_id", event.SlotID))
		return false
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		select {
		case event := <-d.events:
			d.deliver(event)
		case <-d.stop:
			for {
				select {
				case event := <-d.events:
					d.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(event StateChanged) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	var err error
	switch event.Kind {
	case KindClaimConfirmed:
		err = d.mailer.SendConfirmation(ctx, event.Mail)
	case KindCancellationRequested:
		err = d.mailer.SendCancellationRequested(ctx, event.Mail)
	case KindClaimReleased:
		err = d.mailer.SendReleased(ctx, event.Mail)
	default:
		d.log.Warn("unknown notification kind", zap.String("kind", string(event.Kind)))
		return
	}

	if err != nil {
		d.log.Error("failed to deliver notification",
			zap.String("kind", string(event.Kind)),
			zap.Int64("slot_id", event.SlotID),
			zap.Error(err))
		return
	}
	d.log.Info("notification delivered",
		zap.String("kind", string(event.Kind)),
		zap.Int64("slot_id", event.SlotID))
}
