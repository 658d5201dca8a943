package viewmodel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flush waits until every function posted before it has run.
func flush(t *testing.T, d *Dispatcher) {
	t.Helper()
	done := make(chan struct{})
	require.True(t, d.Post(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not drain")
	}
}

func TestDispatcherRunsInOrder(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 100; i++ {
		i := i
		d.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	flush(t, d)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDispatcherRunsOneAtATime(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		d.Post(func() {
			mu.Lock()
			running++
			if running > maxSeen {
				maxSeen = running
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	flush(t, d)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxSeen)
}

func TestDispatcherRecoversFromPanic(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	d.Post(func() { panic("observer blew up") })

	ran := make(chan struct{})
	d.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher stopped after panic")
	}
}

func TestDispatcherPostFromPostedFunc(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	inner := make(chan struct{})
	d.Post(func() {
		d.Post(func() { close(inner) })
	})

	select {
	case <-inner:
	case <-time.After(2 * time.Second):
		t.Fatal("nested post did not run")
	}
}

func TestDispatcherClose(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	d.Close()

	assert.False(t, d.Post(func() { t.Error("ran after close") }))
}

func TestDispatcherPostRacingClose(t *testing.T) {
	d := NewDispatcher()

	var wg sync.WaitGroup
	started := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-started
			for d.Post(func() {}) {
			}
		}()
	}

	close(started)
	time.Sleep(5 * time.Millisecond)
	d.Close()

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Post kept accepting work after Close")
	}

	assert.False(t, d.Post(func() { t.Error("ran after close") }))
	d.mu.Lock()
	defer d.mu.Unlock()
	assert.Empty(t, d.queue)
}
