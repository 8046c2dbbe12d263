package frontdoor

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditDispatcher fans audit events out to the configured sink on a
// dedicated goroutine so request paths never block on sink latency.
// A nil dispatcher is valid and discards everything.
type auditDispatcher struct {
	sink       AuditSink
	events     chan AuditEvent
	quit       chan struct{}
	worker     sync.WaitGroup
	drops      atomic.Uint64
	closed     atomic.Bool
	shutdown   sync.Once
	dropIfFull bool
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	buf := cfg.BufferSize
	if buf <= 0 {
		buf = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		sink:       sink,
		events:     make(chan AuditEvent, buf),
		quit:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}
	d.worker.Add(1)
	go d.run()
	return d
}

func (d *auditDispatcher) run() {
	defer d.worker.Done()
	for {
		select {
		case ev := <-d.events:
			d.sink.Emit(context.Background(), ev)
		case <-d.quit:
			d.flush()
			return
		}
	}
}

// flush delivers whatever is still buffered at shutdown.
func (d *auditDispatcher) flush() {
	for {
		select {
		case ev := <-d.events:
			d.sink.Emit(context.Background(), ev)
		default:
			return
		}
	}
}

// Emit hands an event to the dispatch goroutine. With DropIfFull set the
// call never blocks and a full buffer increments the drop counter;
// otherwise it waits until the buffer accepts, the context is canceled,
// or the dispatcher shuts down.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.events <- event:
		case <-d.quit:
		default:
			d.drops.Add(1)
		}
		return
	}

	select {
	case d.events <- event:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops the dispatch goroutine after draining buffered events.
// It is idempotent and safe on a nil dispatcher.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.shutdown.Do(func() {
		d.closed.Store(true)
		close(d.quit)
		d.worker.Wait()
	})
}

// Dropped reports how many events were discarded because the buffer was
// full while DropIfFull was enabled.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.drops.Load()
}
