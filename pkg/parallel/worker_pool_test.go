package parallel

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
)

// TestWorkerPoolBasicOperations tests basic worker pool functionality
func TestWorkerPoolBasicOperations(t *testing.T) {
	pool, err := NewWorkerPool(4)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	executed := false
	if err := pool.Submit(func() error {
		executed = true
		return nil
	}); err != nil {
		t.Errorf("Task submission failed: %v", err)
	}

	if err := pool.Wait(); err != nil {
		t.Errorf("Wait returned error: %v", err)
	}
	if !executed {
		t.Error("Task was not executed")
	}
}

// TestWorkerPoolConcurrentSubmissions tests concurrent task submissions
func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool, err := NewWorkerPool(10)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	numTasks := 100
	var counter int64

	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Submit(func() error {
				atomic.AddInt64(&counter, 1)
				return nil
			})
		}()
	}

	wg.Wait()
	if err := pool.Wait(); err != nil {
		t.Errorf("Wait returned error: %v", err)
	}

	if counter != int64(numTasks) {
		t.Errorf("Expected counter %d, got %d", numTasks, counter)
	}
}

// TestWorkerPoolFirstError tests that a failing task surfaces from Wait
func TestWorkerPoolFirstError(t *testing.T) {
	pool, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		_ = pool.Submit(func() error {
			if i == 7 {
				return boom
			}
			return nil
		})
	}

	if err := pool.Wait(); !errors.Is(err, boom) {
		t.Errorf("Wait() = %v, want %v", err, boom)
	}
}

// TestWorkerPoolPanicBecomesError tests panic recovery inside tasks
func TestWorkerPoolPanicBecomesError(t *testing.T) {
	pool, err := NewWorkerPool(1)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}

	_ = pool.Submit(func() error { panic("bad task") })
	ran := false
	_ = pool.Submit(func() error {
		ran = true
		return nil
	})

	if err := pool.Wait(); err == nil {
		t.Error("expected panic to be reported as an error")
	}
	if !ran {
		t.Error("worker should survive a panicking task")
	}
}

// TestWorkerPoolSubmitAfterClose tests the closed pool contract
func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	pool.Close()
	pool.Close()

	if err := pool.Submit(func() error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit after Close = %v, want ErrPoolClosed", err)
	}
}

// TestWorkerPoolZeroWorkers tests that non-positive counts fall back to one worker
func TestWorkerPoolZeroWorkers(t *testing.T) {
	pool, err := NewWorkerPool(0)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	defer pool.Close()

	if pool.Workers() != 1 {
		t.Errorf("Workers() = %d, want 1", pool.Workers())
	}
}

// TestWorkerPoolOverflow tests that absurd worker counts are rejected
func TestWorkerPoolOverflow(t *testing.T) {
	_, err := NewWorkerPool(math.MaxInt)
	if !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("NewWorkerPool(MaxInt) = %v, want ErrTooManyWorkers", err)
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		n, parts int
		want     []Range
	}{
		{0, 4, nil},
		{5, 1, []Range{{0, 5}}},
		{5, 2, []Range{{0, 3}, {3, 5}}},
		{3, 8, []Range{{0, 1}, {1, 2}, {2, 3}}},
		{10, 3, []Range{{0, 4}, {4, 8}, {8, 10}}},
		{4, 0, []Range{{0, 4}}},
	}

	for _, tt := range tests {
		got := Chunks(tt.n, tt.parts)
		if len(got) != len(tt.want) {
			t.Errorf("Chunks(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			continue
		}
		total := 0
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Chunks(%d, %d)[%d] = %v, want %v", tt.n, tt.parts, i, got[i], tt.want[i])
			}
			total += got[i].Len()
		}
		if total != tt.n {
			t.Errorf("Chunks(%d, %d) covers %d items", tt.n, tt.parts, total)
		}
	}
}
