package announce

import (
	"context"
	"log"
	"time"
)

// Publisher delivers one event to a single downstream sink.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, event Event) error
}

// Dispatcher queues events and delivers them to every configured publisher
// from a background goroutine.
type Dispatcher struct {
	publishers       []Publisher
	queue            chan Event
	logger           *log.Logger
	drainTimeout     time.Duration
	shutdownComplete chan struct{}
}

// Option configures dispatcher behaviour.
type Option func(*Dispatcher)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithDrainTimeout bounds how long shutdown spends flushing queued events.
func WithDrainTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.drainTimeout = timeout }
}

// NewDispatcher constructs a Dispatcher with the given queue capacity.
func NewDispatcher(queueSize int, publishers []Publisher, opts ...Option) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		publishers:       publishers,
		queue:            make(chan Event, queueSize),
		logger:           log.Default(),
		drainTimeout:     5 * time.Second,
		shutdownComplete: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Announce enqueues the event. Events are dropped, counted, and logged rather
// than blocking when the queue is full or the dispatcher has already stopped.
func (d *Dispatcher) Announce(_ context.Context, event Event) {
	select {
	case <-d.shutdownComplete:
		droppedCounter.Inc()
		d.logger.Printf("announce: dispatcher stopped, dropped %s for %q", event.Type, event.Key)
		return
	default:
	}

	select {
	case d.queue <- event:
	default:
		droppedCounter.Inc()
		d.logger.Printf("announce: queue full, dropped %s for %q", event.Type, event.Key)
	}
}

// Start runs the delivery loop. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	defer close(d.shutdownComplete)

	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		case <-ctx.Done():
			d.drain()
			return
		}
	}
}

// Wait blocks until the dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

// drain flushes events still queued at shutdown under a fresh deadline.
func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), d.drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	for _, publisher := range d.publishers {
		if err := publisher.Publish(ctx, event); err != nil {
			failedCounter.WithLabelValues(publisher.Name()).Inc()
			d.logger.Printf("announce: %s delivery failed for %s: %v", publisher.Name(), event.Type, err)
			continue
		}
		deliveredCounter.WithLabelValues(publisher.Name()).Inc()
	}
}
