package infra

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncer_OnlyLastCallRuns(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)

	var mu sync.Mutex
	var calls []string

	record := func(value string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, value)
		}
	}

	// A quick burst: only the final trigger should survive
	debouncer.Do(record("b"))
	debouncer.Do(record("bt"))
	debouncer.Do(record("btc"))

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("Expected exactly 1 call, got %d (%v)", len(calls), calls)
	}
	if calls[0] != "btc" {
		t.Errorf("Expected last trigger 'btc' to run, got '%s'", calls[0])
	}
}

func TestDebouncer_SeparatedCallsBothRun(t *testing.T) {
	debouncer := NewDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	increment := func() {
		mu.Lock()
		defer mu.Unlock()
		count++
	}

	debouncer.Do(increment)
	time.Sleep(150 * time.Millisecond)
	debouncer.Do(increment)
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Errorf("Expected 2 calls for well-separated triggers, got %d", count)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)

	var mu sync.Mutex
	count := 0

	debouncer.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		count++
	})
	debouncer.Stop()

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("Expected no calls after Stop, got %d", count)
	}
}

func TestDebouncer_UsableAfterStop(t *testing.T) {
	debouncer := NewDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	count := 0

	debouncer.Stop()
	debouncer.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("Expected 1 call after re-arming a stopped debouncer, got %d", count)
	}
}
