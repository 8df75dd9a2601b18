package query

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestQueryObserveTriggersFirstFetch(t *testing.T) {
	var calls int32
	q := New(func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	})

	q.Observe()
	waitFor(t, time.Second, func() bool { return q.Status() == StatusSuccess })

	if q.Data() != 42 {
		t.Fatalf("expected 42, got %d", q.Data())
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", calls)
	}
}

func TestQueryRetriesOnFailureThenSucceeds(t *testing.T) {
	var attempts int32
	q := New(func() (int, error) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return 0, errors.New("transient")
		}
		return 7, nil
	})
	q.Retries = 2
	q.RetryDelay = time.Millisecond

	q.Observe()
	waitFor(t, time.Second, func() bool { return q.Status() == StatusSuccess })

	if q.Data() != 7 {
		t.Fatalf("expected 7 after retries, got %d", q.Data())
	}
	if q.RetryReason() != nil {
		t.Fatalf("expected retry reason cleared on eventual success, got %v", q.RetryReason())
	}
}

func TestQueryExhaustsRetriesAndReportsError(t *testing.T) {
	wantErr := errors.New("permanent")
	q := New(func() (int, error) { return 0, wantErr })
	q.Retries = 1
	q.RetryDelay = time.Millisecond

	q.Observe()
	waitFor(t, time.Second, func() bool { return q.Status() == StatusError })

	if q.Err() != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, q.Err())
	}
}

func TestUnobserveSchedulesGCAndDisposes(t *testing.T) {
	q := New(func() (int, error) { return 1, nil })
	q.GCTime = 10 * time.Millisecond

	q.Observe()
	waitFor(t, time.Second, func() bool { return q.Status() == StatusSuccess })

	disposed := make(chan struct{})
	q.Unobserve(func() { close(disposed) })

	select {
	case <-disposed:
	case <-time.After(time.Second):
		t.Fatal("expected dispose to fire after GCTime elapsed with no new observer")
	}
}

func TestObserveCancelsPendingGC(t *testing.T) {
	q := New(func() (int, error) { return 1, nil })
	q.GCTime = 20 * time.Millisecond

	q.Observe()
	waitFor(t, time.Second, func() bool { return q.Status() == StatusSuccess })

	disposed := int32(0)
	q.Unobserve(func() { atomic.StoreInt32(&disposed, 1) })
	q.Observe() // should cancel the GC timer

	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt32(&disposed) != 0 {
		t.Fatal("expected GC to be cancelled by the second Observe")
	}
}

func TestSetDataDoesNotResetRetries(t *testing.T) {
	q := New(func() (int, error) { return 0, errors.New("x") })
	q.retries.Set(3)
	q.SetData(99)
	if q.RetryCount() != 3 {
		t.Fatalf("expected retries untouched by SetData, got %d", q.RetryCount())
	}
}

func TestQueryStoreNormalizesSliceKeys(t *testing.T) {
	store := NewQueryStore(nil)
	fetch := func() (string, error) { return "v", nil }

	a := Ensure(store, []string{"users", "1"}, fetch)
	b := Ensure(store, []string{"users", "1"}, fetch)

	if a != b {
		t.Fatal("expected two structurally-equal slice keys to resolve to the same Query")
	}
}

func TestInfiniteQueryAppendsAndTrimsPages(t *testing.T) {
	iq := NewInfinite(InfiniteQueryOptions[int, int]{
		FetchPage: func(p int) (int, error) { return p * 100, nil },
		NextParam: func(pages []Page[int, int]) (int, bool) {
			if len(pages) == 0 {
				return 0, true
			}
			return pages[len(pages)-1].Param + 1, true
		},
		Less:     func(a, b int) bool { return a < b },
		MaxPages: 2,
	})

	for i := 0; i < 3; i++ {
		iq.FetchNextPage()
		waitFor(t, time.Second, func() bool { return iq.Status() == StatusSuccess })
	}

	pages := iq.Pages()
	if len(pages) != 2 {
		t.Fatalf("expected trimming to 2 pages, got %d", len(pages))
	}
	// Closest to the last-fetched param (2) should be kept: params 1 and 2.
	if pages[0].Param != 1 || pages[1].Param != 2 {
		t.Fatalf("expected pages [1,2] kept, got %#v", pages)
	}
}
