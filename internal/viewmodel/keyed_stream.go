package viewmodel

import (
	"context"
	"sort"
	"sync"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/rs/zerolog/log"
)

type State int

const (
	Idle State = iota
	Fetching
	Delivered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Fetching:
		return "Fetching"
	case Delivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// FetchFunc starts the work for key and returns its single-value stream.
type FetchFunc[K comparable, T any] func(ctx context.Context, key K) *async.Stream[T]

// Observer receives delivered results on the dispatcher goroutine.
type Observer[T any] func(async.Result[T])

// KeyedStream exposes the result of the most recently set key. Setting a key
// starts a fetch; a fetch whose key has since been replaced runs to completion
// but its result is dropped.
type KeyedStream[K comparable, T any] struct {
	ctx        context.Context
	fetch      FetchFunc[K, T]
	dispatcher *Dispatcher

	mu             sync.Mutex
	generation     uint64
	state          State
	key            K
	last           async.Result[T]
	observers      map[uint64]Observer[T]
	nextObserverID uint64
}

func NewKeyedStream[K comparable, T any](ctx context.Context, fetch FetchFunc[K, T], dispatcher *Dispatcher) *KeyedStream[K, T] {
	return &KeyedStream[K, T]{
		ctx:        ctx,
		fetch:      fetch,
		dispatcher: dispatcher,
		observers:  make(map[uint64]Observer[T]),
	}
}

// SetKey makes key the active key and starts fetching it. Setting the same
// key again starts a new fetch.
func (s *KeyedStream[K, T]) SetKey(key K) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.key = key
	s.state = Fetching
	s.last = async.Result[T]{}
	s.mu.Unlock()

	stream := s.fetch(s.ctx, key)
	go s.await(gen, stream)
}

// Observe attaches fn. If a result has already been delivered for the active
// key, fn receives it right away. The returned func detaches fn.
func (s *KeyedStream[K, T]) Observe(fn Observer[T]) func() {
	s.mu.Lock()
	id := s.nextObserverID
	s.nextObserverID++
	s.observers[id] = fn
	state, gen, last := s.state, s.generation, s.last
	s.mu.Unlock()

	if state == Delivered {
		s.dispatcher.Post(func() {
			s.mu.Lock()
			_, attached := s.observers[id]
			current := gen == s.generation
			s.mu.Unlock()
			if attached && current {
				fn(last)
			}
		})
	}

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// State reports the current state and the active key.
func (s *KeyedStream[K, T]) State() (State, K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.key
}

// Latest returns the result delivered for the active key, if any.
func (s *KeyedStream[K, T]) Latest() (async.Result[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.state == Delivered
}

func (s *KeyedStream[K, T]) await(gen uint64, stream *async.Stream[T]) {
	r, ok := <-stream.C()
	if !ok {
		return
	}
	if !s.isCurrent(gen) {
		log.Debug().Uint64("generation", gen).Msg("Dropping result for superseded key")
		return
	}
	if !s.dispatcher.Post(func() { s.deliver(gen, r) }) {
		log.Debug().Uint64("generation", gen).Msg("Dispatcher closed, result not delivered")
	}
}

func (s *KeyedStream[K, T]) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

func (s *KeyedStream[K, T]) deliver(gen uint64, r async.Result[T]) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("Dropping result for superseded key")
		return
	}
	s.state = Delivered
	s.last = r

	ids := make([]uint64, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer[T], 0, len(ids))
	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(r)
	}
}
