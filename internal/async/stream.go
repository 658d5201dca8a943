package async

import (
	"context"
	"sync"
)

// Stream carries at most one Result and is closed right after it.
type Stream[T any] struct {
	ch   chan Result[T]
	once sync.Once
}

func newStream[T any]() *Stream[T] {
	return &Stream[T]{ch: make(chan Result[T], 1)}
}

// emit sends r and closes the stream. Only the first call has any effect.
func (s *Stream[T]) emit(r Result[T]) bool {
	sent := false
	s.once.Do(func() {
		s.ch <- r
		close(s.ch)
		sent = true
	})
	return sent
}

// C exposes the receive side. It yields at most one value before closing.
func (s *Stream[T]) C() <-chan Result[T] {
	return s.ch
}

// Await blocks for the single Result. ok is false if ctx ends first or the
// stream closed without a value.
func (s *Stream[T]) Await(ctx context.Context) (Result[T], bool) {
	select {
	case r, ok := <-s.ch:
		return r, ok
	case <-ctx.Done():
		return Result[T]{}, false
	}
}

// Just returns a stream that already holds r.
func Just[T any](r Result[T]) *Stream[T] {
	s := newStream[T]()
	s.emit(r)
	return s
}
