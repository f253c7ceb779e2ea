package sitegen

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      func(int) bool
	}{
		{"explicit in range", 4, func(n int) bool { return n == 4 }},
		{"explicit above cap", 100, func(n int) bool { return n == MaxWorkers }},
		{"zero uses cpu default", 0, func(n int) bool { return n >= MinWorkers && n <= MaxWorkers }},
		{"negative uses cpu default", -3, func(n int) bool { return n >= MinWorkers && n <= MaxWorkers }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveWorkers(tt.requested); !tt.want(got) {
				t.Errorf("ResolveWorkers(%d) = %d", tt.requested, got)
			}
		})
	}
}

func TestRunParallel(t *testing.T) {
	var count atomic.Int64
	tasks := make([]func() error, 50)
	for i := range tasks {
		tasks[i] = func() error {
			count.Add(1)
			return nil
		}
	}
	if err := runParallel(context.Background(), 4, tasks); err != nil {
		t.Fatalf("runParallel() error = %v", err)
	}
	if count.Load() != 50 {
		t.Errorf("ran %d tasks, want 50", count.Load())
	}
}

func TestRunParallelFirstError(t *testing.T) {
	boom := errors.New("boom")
	tasks := []func() error{
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	}
	if err := runParallel(context.Background(), 2, tasks); !errors.Is(err, boom) {
		t.Errorf("runParallel() error = %v, want boom", err)
	}
}

func TestRunParallelCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool
	err := runParallel(ctx, 2, []func() error{func() error {
		ran.Store(true)
		return nil
	}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runParallel() error = %v, want context.Canceled", err)
	}
	if ran.Load() {
		t.Error("task ran despite canceled context")
	}
}
