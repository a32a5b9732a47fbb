package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if got := pool.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
			if !pool.IsRunning() {
				t.Error("new pool is not running")
			}
		})
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	results := make([]int, 100)
	work := make([]func(), len(results))
	for i := range work {
		work[i] = func() { results[i] = i * i }
	}

	if err := pool.ExecuteAll(context.Background(), work); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}
	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.ExecuteAll(context.Background(), nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v", err)
	}
	if err := pool.ExecuteAll(context.Background(), []func(){}); err != nil {
		t.Errorf("ExecuteAll(empty) = %v", err)
	}
}

func TestWorkerPool_ExecuteAll_Cancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	work := make([]func(), 50)
	for i := range work {
		work[i] = func() { ran.Add(1) }
	}

	err := pool.ExecuteAll(ctx, work)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d items ran after cancellation", ran.Load())
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool still running after Close")
	}

	var executed atomic.Bool
	err := pool.ExecuteAll(context.Background(), []func(){
		func() { executed.Store(true) },
	})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
	if executed.Load() {
		t.Error("work executed on closed pool")
	}
}

func TestWorkerPool_ExecuteAll_Nil(t *testing.T) {
	var p *WorkerPool
	err := p.ExecuteAll(context.Background(), []func(){func() {}})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

// Close racing with ExecuteAll must neither hang nor drop work: a batch
// either runs completely or is refused with ErrClosed.
func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	for range 50 {
		pool := NewWorkerPool(2)

		var (
			wg     sync.WaitGroup
			ran    atomic.Int64
			queued atomic.Int64
		)
		for range 4 {
			wg.Go(func() {
				work := make([]func(), 32)
				for i := range work {
					work[i] = func() { ran.Add(1) }
				}
				if err := pool.ExecuteAll(context.Background(), work); err == nil {
					queued.Add(int64(len(work)))
				} else if !errors.Is(err, ErrClosed) {
					t.Errorf("ExecuteAll() error = %v", err)
				}
			})
		}
		pool.Close()

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("ExecuteAll did not return after Close")
		}
		if ran.Load() != queued.Load() {
			t.Fatalf("ran %d items, accepted %d", ran.Load(), queued.Load())
		}
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const callers, perCaller = 10, 50

	var wg sync.WaitGroup
	for range callers {
		wg.Go(func() {
			work := make([]func(), perCaller)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			if err := pool.ExecuteAll(context.Background(), work); err != nil {
				t.Errorf("ExecuteAll: %v", err)
			}
		})
	}
	wg.Wait()

	if got := counter.Load(); got != callers*perCaller {
		t.Errorf("counter = %d, want %d", got, callers*perCaller)
	}
}

func TestWorkerPool_UnevenWork(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var done atomic.Int64
	work := make([]func(), 40)
	for i := range work {
		work[i] = func() {
			if i%4 == 0 {
				time.Sleep(2 * time.Millisecond)
			}
			done.Add(1)
		}
	}

	if err := pool.ExecuteAll(context.Background(), work); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}
	if done.Load() != int64(len(work)) {
		t.Errorf("done = %d, want %d", done.Load(), len(work))
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(8)
		_ = pool.ExecuteAll(context.Background(), []func(){func() {}})
		pool.Close()
	}

	time.Sleep(20 * time.Millisecond)
	if after := runtime.NumGoroutine(); after > before+2 {
		t.Errorf("goroutines: before=%d after=%d", before, after)
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	work := make([]func(), 256)
	for i := range work {
		work[i] = func() {}
	}

	for b.Loop() {
		_ = pool.ExecuteAll(context.Background(), work)
	}
}
