package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestRefCacheAcquireShares(t *testing.T) {
	c := NewRef[string, *int]()
	created := 0
	create := func() (*int, error) {
		created++
		v := created
		return &v, nil
	}

	a, err := c.Acquire("k", create)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	b, err := c.Acquire("k", create)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if a != b {
		t.Error("equal keys should share one value")
	}
	if created != 1 {
		t.Errorf("create called %d times, want 1", created)
	}
	if got := c.Refs("k"); got != 2 {
		t.Errorf("Refs = %d, want 2", got)
	}
}

func TestRefCacheReleaseLast(t *testing.T) {
	c := NewRef[int, string]()
	create := func() (string, error) { return "v", nil }
	_, _ = c.Acquire(1, create)
	_, _ = c.Acquire(1, create)

	tests := []struct {
		name     string
		wantLast bool
		wantLen  int
	}{
		{"first release keeps entry", false, 1},
		{"second release removes entry", true, 0},
		{"extra release is ignored", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, last := c.Release(1)
			if last != tt.wantLast {
				t.Errorf("last = %v, want %v", last, tt.wantLast)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestRefCacheCreateError(t *testing.T) {
	c := NewRef[string, int]()
	boom := errors.New("boom")
	if _, err := c.Acquire("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("Acquire err = %v, want %v", err, boom)
	}
	if c.Len() != 0 {
		t.Errorf("failed create must not store an entry, Len = %d", c.Len())
	}
}

func TestRefCacheDrainAndStats(t *testing.T) {
	c := NewRef[int, int]()
	for i := range 3 {
		_, _ = c.Acquire(i, func() (int, error) { return i * 10, nil })
	}
	_, _ = c.Acquire(0, func() (int, error) { return -1, nil })

	if s := c.Stats(); s.Len != 3 || s.Refs != 4 {
		t.Errorf("Stats = %+v, want Len 3 Refs 4", s)
	}
	if got := len(c.Drain()); got != 3 {
		t.Errorf("Drain returned %d values, want 3", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", c.Len())
	}
}

func TestRefCacheConcurrent(t *testing.T) {
	c := NewRef[string, int]()
	var wg sync.WaitGroup
	const n = 64
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Acquire("shared", func() (int, error) { return 7, nil })
		}()
	}
	wg.Wait()
	if got := c.Refs("shared"); got != n {
		t.Fatalf("Refs = %d, want %d", got, n)
	}
	for range n {
		c.Release("shared")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}
