package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/pkg/http/client"
	"github.com/rs/zerolog/log"
)

type outcome struct {
	resp *client.Response
	err  error
}

// Await starts exactly one executor call and blocks until its callback fires
// or ctx ends. The payload is decoded into T. Only the first callback counts.
func Await[T any](ctx context.Context, executor client.Executor, call client.Call) (*T, error) {
	done := make(chan outcome, 1)
	var once sync.Once

	executor.Enqueue(ctx, call, func(resp *client.Response, err error) {
		delivered := false
		once.Do(func() {
			done <- outcome{resp: resp, err: err}
			delivered = true
		})
		if !delivered {
			log.Warn().Str("path", call.Path).Msg("Ignoring repeated callback")
		}
	})

	select {
	case o := <-done:
		return decode[T](o)
	case <-ctx.Done():
		return nil, async.NewTransportError(ctx.Err())
	}
}

func decode[T any](o outcome) (*T, error) {
	if o.err != nil {
		return nil, async.NewTransportError(o.err)
	}
	if o.resp == nil || o.resp.StatusCode < http.StatusOK || o.resp.StatusCode >= http.StatusMultipleChoices {
		return nil, async.NewEmptyBodyError()
	}

	body := bytes.TrimSpace(o.resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, async.NewEmptyBodyError()
	}

	var payload T
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, async.NewTransportError(fmt.Errorf("decoding response: %w", err))
	}
	return &payload, nil
}
