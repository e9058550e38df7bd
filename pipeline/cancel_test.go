package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestCheckCancel(t *testing.T) {
	if err := CheckCancel(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := CheckCancel(ctx)
	if err == nil || !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestForEachLayer_VisitsAll(t *testing.T) {
	const n = 50
	var seen [n]int32
	err := ForEachLayer(context.Background(), n, func(ctx context.Context, layer int) error {
		atomic.AddInt32(&seen[layer], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("layer %d visited %d times, want 1", i, v)
		}
	}
}

func TestForEachLayer_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	err := ForEachLayer(context.Background(), 10, func(ctx context.Context, layer int) error {
		if layer == 3 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wantErr, got %v", err)
	}
}

func TestForEachLayer_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachLayer(ctx, 10, func(ctx context.Context, layer int) error {
		return nil
	})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
