// Package query implements a per-key cached-fetch subsystem: one Query
// per cache key, ref-counted by observers, garbage collected after the
// last observer leaves, with retry-on-failure and stale-time-aware
// refetch. It generalizes pkg/features/resource's single-resource
// State/fetchID/retry-loop machinery (the closest existing analogue in
// this codebase) across many independently keyed, shared, GC'd entries.
package query

import (
	"sync"
	"time"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// Status mirrors resource.State but adds nothing new: the teacher's
// three-state (loading/ready/error) plus pending is exactly spec's
// status enum once "pending" and "loading" are folded together for a
// freshly observed query with no cached data yet.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchStatus is independent of Status: a query can hold success data
// while a background refetch is in flight (fetch_status=fetching) or
// paused (e.g. network offline) without its Status regressing to loading.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchFetching
	FetchPaused
)

func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchFetching:
		return "fetching"
	case FetchPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Timers schedules the GC deadline a Query installs when its last
// observer leaves. The default implementation wraps time.AfterFunc;
// RenderSession (§4.7) supplies an implementation backed by its own
// timer registry instead, so closing a session cancels every query's GC
// timer deterministically rather than leaking a goroutine per query.
type Timers interface {
	After(d time.Duration, fn func()) (cancel func())
}

type stdTimers struct{}

func (stdTimers) After(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// StdTimers is the default Timers backed directly by time.AfterFunc.
var StdTimers Timers = stdTimers{}

// Query holds the cached state for one key: data, error, timestamps and
// status signals, plus observer ref-counting and GC scheduling.
type Query[T any] struct {
	fetch func() (T, error)
	timers Timers

	data        *reactive.Signal[T]
	err         *reactive.Signal[error]
	lastUpdated *reactive.Signal[time.Time]
	status      *reactive.Signal[Status]
	fetchStatus *reactive.Signal[FetchStatus]
	retries     *reactive.Signal[int]
	retryReason *reactive.Signal[error]

	// Retries is the number of retry attempts after the first failed
	// attempt (so MaxAttempts = Retries+1), configurable per query
	// instead of the teacher's Resource-wide hardcoded count.
	Retries    int
	RetryDelay time.Duration
	StaleTime  time.Duration
	GCTime     time.Duration

	mu          sync.Mutex
	observers   int
	gcCancel    func()
	generation  uint64
	lastParam   any
	inflight    bool
	inflightCh  chan struct{}
}

// New constructs a Query that hasn't fetched yet; the first Observe call
// triggers the initial run, matching the "lazy effect created on first
// observation" rule.
func New[T any](fetchFn func() (T, error)) *Query[T] {
	return &Query[T]{
		fetch:       fetchFn,
		timers:      StdTimers,
		data:        reactive.NewSignal(*new(T)),
		err:         reactive.NewSignal[error](nil),
		lastUpdated: reactive.NewSignal(time.Time{}),
		status:      reactive.NewSignal(StatusLoading),
		fetchStatus: reactive.NewSignal(FetchIdle),
		retries:     reactive.NewSignal(0),
		retryReason: reactive.NewSignal[error](nil),
		RetryDelay:  2 * time.Second,
		GCTime:      5 * time.Minute,
	}
}

func (q *Query[T]) Data() T                  { return q.data.Get() }
func (q *Query[T]) Err() error               { return q.err.Get() }
func (q *Query[T]) LastUpdated() time.Time   { return q.lastUpdated.Get() }
func (q *Query[T]) Status() Status           { return q.status.Get() }
func (q *Query[T]) FetchStatus() FetchStatus { return q.fetchStatus.Get() }
func (q *Query[T]) RetryCount() int          { return q.retries.Get() }
func (q *Query[T]) RetryReason() error       { return q.retryReason.Get() }

// SetData/SetError are direct signal writes (e.g. optimistic updates or
// mutation results); per spec they never reset Retries/FetchStatus.
func (q *Query[T]) SetData(v T) {
	q.data.Set(v)
	q.status.Set(StatusSuccess)
	q.lastUpdated.Set(time.Now())
}

func (q *Query[T]) SetError(err error) {
	q.err.Set(err)
	q.status.Set(StatusError)
}

// Observe registers an observer, cancelling any pending GC timer and
// triggering the first run if this is the first observation ever.
func (q *Query[T]) Observe() {
	q.mu.Lock()
	q.observers++
	first := q.observers == 1 && q.lastUpdated.Peek().IsZero() && q.status.Peek() != StatusSuccess
	if q.gcCancel != nil {
		q.gcCancel()
		q.gcCancel = nil
	}
	q.mu.Unlock()

	if first {
		q.Refetch(false)
	}
}

// Unobserve decrements the ref-count; at zero, schedules GC after
// GCTime, disposing the query's resources if no new observer arrives.
func (q *Query[T]) Unobserve(dispose func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.observers > 0 {
		q.observers--
	}
	if q.observers == 0 {
		q.gcCancel = q.timers.After(q.GCTime, func() {
			q.mu.Lock()
			stillIdle := q.observers == 0
			q.mu.Unlock()
			if stillIdle && dispose != nil {
				dispose()
			}
		})
	}
}

// Invalidate marks cached data stale and reschedules a run only if
// observers remain (an unobserved query is left alone; it'll refetch on
// next Observe instead).
func (q *Query[T]) Invalidate() {
	q.lastUpdated.Set(time.Time{})
	q.mu.Lock()
	hasObservers := q.observers > 0
	q.mu.Unlock()
	if hasObservers {
		q.Refetch(false)
	}
}

// IsStale reports whether the query's data is older than StaleTime (or
// there's no data yet).
func (q *Query[T]) IsStale() bool {
	last := q.lastUpdated.Peek()
	if last.IsZero() {
		return true
	}
	return time.Since(last) >= q.StaleTime
}

// Refetch runs the fetch function. cancelInflight=true bumps the fetch
// generation so any in-flight run's result is discarded when it lands
// (the same fetchID-cancellation idiom as resource.go's Refetch);
// cancelInflight=false dedupes by having the caller await the existing
// run instead of starting a new one.
func (q *Query[T]) Refetch(cancelInflight bool) {
	q.mu.Lock()
	if q.inflight && !cancelInflight {
		ch := q.inflightCh
		q.mu.Unlock()
		if ch != nil {
			<-ch
		}
		return
	}
	q.generation++
	gen := q.generation
	q.inflight = true
	q.inflightCh = make(chan struct{})
	q.mu.Unlock()

	q.fetchStatus.Set(FetchFetching)

	go q.run(gen)
}

func (q *Query[T]) run(gen uint64) {
	var result T
	var err error

	maxAttempts := 1 + q.Retries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			q.retries.Set(attempt)
			q.retryReason.Set(err)
			time.Sleep(q.RetryDelay)
		}

		q.mu.Lock()
		stale := q.generation != gen
		q.mu.Unlock()
		if stale {
			return
		}

		result, err = q.fetch()
		if err == nil {
			break
		}
	}

	q.mu.Lock()
	if q.generation != gen {
		q.mu.Unlock()
		return
	}
	q.inflight = false
	ch := q.inflightCh
	q.inflightCh = nil
	q.mu.Unlock()
	if ch != nil {
		close(ch)
	}

	q.fetchStatus.Set(FetchIdle)
	if err != nil {
		q.err.Set(err)
		q.status.Set(StatusError)
		return
	}
	q.retries.Set(0)
	q.retryReason.Set(nil)
	q.SetData(result)
}
