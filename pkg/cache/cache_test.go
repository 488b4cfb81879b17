package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPutGetOrLoadHit(t *testing.T) {
	c, err := New[string, string](1<<20, time.Minute, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Put(context.Background(), "k", "v", 1)

	loaderCalled := false
	got, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context, key string) (string, error) {
		loaderCalled = true
		return "loaded", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if got != "v" {
		t.Errorf("GetOrLoad = %q, want %q", got, "v")
	}
	if loaderCalled {
		t.Errorf("loader invoked on a hit")
	}
}

func TestGetOrLoadMissInvokesLoader(t *testing.T) {
	c, err := New[string, string](1<<20, time.Minute, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	got, err := c.GetOrLoad(context.Background(), "absent", func(ctx context.Context, key string) (string, error) {
		return "generated:" + key, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if got != "generated:absent" {
		t.Errorf("GetOrLoad = %q, want %q", got, "generated:absent")
	}
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	c, err := New[string, string](1<<20, time.Minute, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	wantErr := errors.New("boom")
	_, err = c.GetOrLoad(context.Background(), "absent", func(ctx context.Context, key string) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrLoad error = %v, want %v", err, wantErr)
	}
}

func TestLenTracksDistinctKeys(t *testing.T) {
	c, err := New[int, int](1<<20, time.Minute, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	for i := 0; i < 50; i++ {
		c.Put(context.Background(), i, i*i, 1)
	}
	if got := c.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}

	// Overwriting an existing key must not change Len().
	c.Put(context.Background(), 0, 999, 1)
	if got := c.Len(); got != 50 {
		t.Errorf("Len() after overwrite = %d, want 50", got)
	}
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	if _, err := New[int, int](0, time.Minute, 4); err == nil {
		t.Error("New with capBytes=0: want error")
	}
	if _, err := New[int, int](1<<20, 0, 4); err == nil {
		t.Error("New with ttl=0: want error")
	}
	if _, err := New[int, int](1<<20, time.Minute, 3); err == nil {
		t.Error("New with non-power-of-two shards: want error")
	}
}
