package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrQueueFull = errors.New("notification queue full")

const (
	dispatchQueueSize = 64
	sendTimeout       = 15 * time.Second
)

type job struct {
	kind string
	run  func(ctx context.Context) error
}

// Dispatcher runs a NotificationSender off the request path. Its Notify
// methods only enqueue; delivery errors are logged by the worker.
type Dispatcher struct {
	sender NotificationSender
	log    *zap.Logger
	queue  chan job

	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(sender NotificationSender, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan job, dispatchQueueSize),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := j.run(ctx); err != nil {
			d.log.Warn("notification failed", zap.String("kind", j.kind), zap.Error(err))
		}
		cancel()
	}
}

func (d *Dispatcher) enqueue(j job) error {
	select {
	case d.queue <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) NotifyNewBooking(_ context.Context, b *models.Booking) error {
	return d.enqueue(job{kind: "new_booking", run: func(ctx context.Context) error {
		return d.sender.NotifyNewBooking(ctx, b)
	}})
}

func (d *Dispatcher) NotifyBookingStatus(_ context.Context, b *models.Booking) error {
	return d.enqueue(job{kind: "booking_status", run: func(ctx context.Context) error {
		return d.sender.NotifyBookingStatus(ctx, b)
	}})
}

func (d *Dispatcher) NotifyBookingDeleted(_ context.Context, b *models.Booking) error {
	return d.enqueue(job{kind: "booking_deleted", run: func(ctx context.Context) error {
		return d.sender.NotifyBookingDeleted(ctx, b)
	}})
}

func (d *Dispatcher) NotifyContactMessage(_ context.Context, m *models.ContactMessage) error {
	return d.enqueue(job{kind: "contact_message", run: func(ctx context.Context) error {
		return d.sender.NotifyContactMessage(ctx, m)
	}})
}

// Close delivers what is queued and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
