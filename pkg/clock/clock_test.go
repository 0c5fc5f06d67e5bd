package clock

import (
	"sync"
	"testing"
	"time"
)

func TestManualClock_NowSetAdd(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 2, 11, 13, 28, 0, 0, time.UTC)
	c := NewManualClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now()=%v, want %v", got, start)
	}

	next := start.Add(3 * time.Hour)
	c.Set(next)
	if got := c.Now(); !got.Equal(next) {
		t.Fatalf("Now() after Set()=%v, want %v", got, next)
	}

	c.Add(time.Minute)
	if got := c.Now(); !got.Equal(next.Add(time.Minute)) {
		t.Fatalf("Now() after Add()=%v, want %v", got, next.Add(time.Minute))
	}
}

func TestManualClock_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	c := NewManualClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(time.Second)
			_ = c.Now()
		}()
	}
	wg.Wait()

	if got := c.Now(); !got.Equal(start.Add(20 * time.Second)) {
		t.Fatalf("Now()=%v, want %v", got, start.Add(20*time.Second))
	}
}

func TestSystemIsUTC(t *testing.T) {
	t.Parallel()

	if loc := (System{}).Now().Location(); loc != time.UTC {
		t.Fatalf("System.Now() location = %v, want UTC", loc)
	}
}
