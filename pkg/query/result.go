package query

import (
	"time"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// ResultOptions configures a QueryResult's behavior around staleness,
// garbage collection, and lifecycle callbacks.
type ResultOptions struct {
	StaleTime        time.Duration
	GCTime           time.Duration
	KeepPreviousData bool
	Enabled          bool
	FetchOnMount     bool
	RefetchInterval  time.Duration
	OnSuccess        func(any)
	OnError          func(error)
}

// DefaultResultOptions mirrors the defaults a fresh Query carries.
func DefaultResultOptions() ResultOptions {
	return ResultOptions{
		StaleTime:    0,
		GCTime:       5 * time.Minute,
		Enabled:      true,
		FetchOnMount: true,
	}
}

// QueryResult is a component-bound observer of a Query[T]: it tracks
// which key is active via a Memo (so changing the key swaps the
// underlying Query without the caller managing observe/unobserve by
// hand), mounts/unmounts through an Effect, and optionally keeps the
// previous page's data visible while a new key's fetch is in flight.
type QueryResult[T any] struct {
	store   *QueryStore
	keyFn   func() any
	fetchFn func(key any) (T, error)
	opts    ResultOptions

	active       *reactive.Memo[*Query[T]]
	previousData *reactive.Signal[T]
	mountedKey   *reactive.Signal[string]
}

// Use creates a QueryResult bound to a dynamic key: keyFn is tracked
// reactively, so changing the key re-resolves (and, via the mount
// Effect below, re-observes) the Query it points at.
func Use[T any](store *QueryStore, keyFn func() any, fetchFn func(key any) (T, error), opts ResultOptions) *QueryResult[T] {
	qr := &QueryResult[T]{
		store:        store,
		keyFn:        keyFn,
		fetchFn:      fetchFn,
		opts:         opts,
		previousData: reactive.NewSignal(*new(T)),
		mountedKey:   reactive.NewSignal(""),
	}

	qr.active = reactive.NewMemo(func() *Query[T] {
		key := keyFn()
		q := Ensure(store, key, func() (T, error) { return fetchFn(key) })
		q.StaleTime = opts.StaleTime
		if opts.GCTime > 0 {
			q.GCTime = opts.GCTime
		}
		return q
	})

	reactive.CreateEffect(func() reactive.Cleanup {
		if !opts.Enabled {
			return nil
		}
		key := keyFn()
		nk := NormalizeKey(key)
		q := qr.active.Get()

		if qr.opts.KeepPreviousData {
			reactive.Untracked(func() {
				if data := q.Data(); qr.mountedKey.Peek() != nk {
					qr.previousData.Set(data)
				}
			})
		}
		qr.mountedKey.Set(nk)

		q.Observe()
		var stopInterval func()
		if opts.RefetchInterval > 0 {
			stopInterval = startInterval(opts.RefetchInterval, func() { q.Refetch(false) })
		}

		return func() {
			if stopInterval != nil {
				stopInterval()
			}
			store.Unobserve(key)
		}
	})

	return qr
}

func startInterval(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

// Data returns the active query's data, or (if KeepPreviousData is set
// and a refetch for a new key is in flight) the previous key's last
// known data instead of the new key's zero value.
func (qr *QueryResult[T]) Data() T {
	q := qr.active.Get()
	if qr.opts.KeepPreviousData && q.Status() == StatusLoading {
		return qr.previousData.Get()
	}
	return q.Data()
}

func (qr *QueryResult[T]) Status() Status           { return qr.active.Get().Status() }
func (qr *QueryResult[T]) FetchStatus() FetchStatus { return qr.active.Get().FetchStatus() }
func (qr *QueryResult[T]) Error() error             { return qr.active.Get().Err() }
func (qr *QueryResult[T]) IsLoading() bool          { return qr.active.Get().Status() == StatusLoading }
func (qr *QueryResult[T]) IsSuccess() bool          { return qr.active.Get().Status() == StatusSuccess }
func (qr *QueryResult[T]) IsError() bool            { return qr.active.Get().Status() == StatusError }

// Refetch forces the active query to re-run, handler callbacks wrapped
// in Untracked so observing them doesn't create spurious dependencies.
func (qr *QueryResult[T]) Refetch() {
	q := qr.active.Get()
	q.Refetch(true)
	if qr.opts.OnSuccess != nil || qr.opts.OnError != nil {
		reactive.Untracked(func() {
			if err := q.Err(); err != nil && qr.opts.OnError != nil {
				qr.opts.OnError(err)
			} else if qr.opts.OnSuccess != nil {
				qr.opts.OnSuccess(q.Data())
			}
		})
	}
}
