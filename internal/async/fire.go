package async

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Operation yields a Result or fails with an error.
type Operation[T any] func(ctx context.Context) (Result[T], error)

// Fire runs op on a new goroutine and returns a Stream that receives exactly
// one Result. A returned error or a panic becomes a Failure; nothing escapes.
func Fire[T any](ctx context.Context, op Operation[T]) *Stream[T] {
	s := newStream[T]()
	go func() {
		s.emit(run(ctx, op))
	}()
	return s
}

func run[T any](ctx context.Context, op Operation[T]) (result Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			result = Failure[T](fmt.Errorf("operation panicked: %v", p))
		}
		if e := result.Err(); e != nil {
			log.Warn().Str("kind", string(e.Kind)).Err(e).Msg("Operation failed")
		}
	}()

	r, err := op(ctx)
	if err != nil {
		return Failure[T](err)
	}
	return r
}
