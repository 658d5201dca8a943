package viewmodel

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Dispatcher runs posted functions one at a time on a single goroutine. It is
// the context on which observers are notified, whatever goroutine produced
// the result.
type Dispatcher struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go d.loop()
	return d
}

// Post queues fn for execution. It never blocks and reports false once the
// dispatcher has been closed.
func (d *Dispatcher) Post(fn func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

// Close stops the dispatcher after the function currently running returns.
// Queued functions that have not started are discarded, and every later Post
// reports false. Close must not be called from a posted function.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.queue = nil
		close(d.done)
	}
	d.mu.Unlock()
	<-d.stopped
}

func (d *Dispatcher) loop() {
	defer close(d.stopped)
	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		}

		for {
			fn, ok := d.next()
			if !ok {
				break
			}
			select {
			case <-d.done:
				return
			default:
			}
			d.run(fn)
		}
	}
}

func (d *Dispatcher) next() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil, false
	}
	fn := d.queue[0]
	d.queue[0] = nil
	d.queue = d.queue[1:]
	return fn, true
}

func (d *Dispatcher) run(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("Observer panicked during delivery")
		}
	}()
	fn()
}
