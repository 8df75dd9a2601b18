package query

import (
	"sort"
	"sync"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// Page is one fetched page of an InfiniteQuery, keyed by the param used
// to fetch it (a cursor, offset, or page number depending on the
// pagination scheme the caller's Fetcher implements).
type Page[T any, P any] struct {
	Param P
	Data  T
}

// InfiniteQuery stores an ordered list of Pages and appends/prepends to
// it via next/previous-page params a caller-supplied function derives
// from the most recently fetched page. Supplemental to the teacher
// (which has no paging concept at all); grounded on the Python
// original's infinite_query.py trimming algorithm, generalized to Go
// generics.
type InfiniteQuery[T any, P any] struct {
	fetchPage func(param P) (T, error)
	nextParam func(pages []Page[T, P]) (P, bool)
	prevParam func(pages []Page[T, P]) (P, bool)
	less      func(a, b P) bool

	MaxPages int // 0 = unbounded

	mu         sync.Mutex
	pages      *reactive.Signal[[]Page[T, P]]
	status     *reactive.Signal[Status]
	err        *reactive.Signal[error]
	lastParam  P
	generation uint64
}

// InfiniteQueryOptions configures an InfiniteQuery.
type InfiniteQueryOptions[T any, P any] struct {
	FetchPage func(param P) (T, error)
	NextParam func(pages []Page[T, P]) (P, bool)
	PrevParam func(pages []Page[T, P]) (P, bool)
	// Less orders params so FetchPage(param) can be inserted at its
	// sorted position and MaxPages trimming can keep the pages closest
	// to the last-fetched param.
	Less     func(a, b P) bool
	MaxPages int
}

func NewInfinite[T any, P any](opts InfiniteQueryOptions[T, P]) *InfiniteQuery[T, P] {
	return &InfiniteQuery[T, P]{
		fetchPage: opts.FetchPage,
		nextParam: opts.NextParam,
		prevParam: opts.PrevParam,
		less:      opts.Less,
		MaxPages:  opts.MaxPages,
		pages:     reactive.NewSignal[[]Page[T, P]](nil),
		status:    reactive.NewSignal(StatusLoading),
		err:       reactive.NewSignal[error](nil),
	}
}

func (iq *InfiniteQuery[T, P]) Pages() []Page[T, P] { return iq.pages.Get() }
func (iq *InfiniteQuery[T, P]) Status() Status      { return iq.status.Get() }
func (iq *InfiniteQuery[T, P]) Err() error          { return iq.err.Get() }

// FetchNextPage derives the next page's param from the current last
// page (via NextParam) and appends it once fetched.
func (iq *InfiniteQuery[T, P]) FetchNextPage() bool {
	current := iq.pages.Peek()
	param, ok := iq.nextParam(current)
	if !ok {
		return false
	}
	iq.fetchAndInsert(param)
	return true
}

// FetchPreviousPage is the symmetric prepend operation.
func (iq *InfiniteQuery[T, P]) FetchPreviousPage() bool {
	current := iq.pages.Peek()
	param, ok := iq.prevParam(current)
	if !ok {
		return false
	}
	iq.fetchAndInsert(param)
	return true
}

// FetchPage fetches param directly and inserts (or replaces, if already
// present) it at its sorted position, trimming to MaxPages afterward.
func (iq *InfiniteQuery[T, P]) FetchPage(param P) {
	iq.fetchAndInsert(param)
}

func (iq *InfiniteQuery[T, P]) fetchAndInsert(param P) {
	iq.mu.Lock()
	iq.generation++
	gen := iq.generation
	iq.lastParam = param
	iq.mu.Unlock()

	iq.status.Set(StatusLoading)

	go func() {
		data, err := iq.fetchPage(param)

		iq.mu.Lock()
		stale := iq.generation != gen
		iq.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			iq.err.Set(err)
			iq.status.Set(StatusError)
			return
		}

		iq.insertSorted(Page[T, P]{Param: param, Data: data})
		iq.status.Set(StatusSuccess)
	}()
}

// insertSorted replaces an existing page with the same Param or inserts
// the new page at its sorted position (by Less), then trims to MaxPages
// by keeping the pages whose Param is closest to the last-fetched one —
// the original's trimming rule for bounding memory on long scroll lists
// without discarding the page the user is currently looking at.
func (iq *InfiniteQuery[T, P]) insertSorted(p Page[T, P]) {
	iq.pages.Update(func(pages []Page[T, P]) []Page[T, P] {
		out := make([]Page[T, P], 0, len(pages)+1)
		inserted := false
		for _, existing := range pages {
			if !iq.less(existing.Param, p.Param) && !iq.less(p.Param, existing.Param) {
				// Same param: replace in place.
				out = append(out, p)
				inserted = true
				continue
			}
			if !inserted && iq.less(p.Param, existing.Param) {
				out = append(out, p)
				inserted = true
			}
			out = append(out, existing)
		}
		if !inserted {
			out = append(out, p)
		}

		if iq.MaxPages > 0 && len(out) > iq.MaxPages {
			out = iq.trim(out)
		}
		return out
	})
}

// trim keeps the MaxPages entries whose Param is closest, by sorted
// rank distance, to lastParam — the original's rule for bounding memory
// on long scroll lists without discarding the page the user is
// currently looking at. P need only be orderable (Less), not
// subtractable, so "distance" is measured in sorted-position offsets
// rather than a numeric delta.
func (iq *InfiniteQuery[T, P]) trim(pages []Page[T, P]) []Page[T, P] {
	sorted := make([]Page[T, P], len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool { return iq.less(sorted[i].Param, sorted[j].Param) })

	anchor := 0
	for i, p := range sorted {
		if !iq.less(p.Param, iq.lastParam) {
			anchor = i
			break
		}
		anchor = i
	}

	type ranked struct {
		page Page[T, P]
		dist int
	}
	rankedPages := make([]ranked, len(sorted))
	for i, p := range sorted {
		d := i - anchor
		if d < 0 {
			d = -d
		}
		rankedPages[i] = ranked{page: p, dist: d}
	}
	sort.SliceStable(rankedPages, func(i, j int) bool { return rankedPages[i].dist < rankedPages[j].dist })

	keep := iq.MaxPages
	if keep > len(rankedPages) {
		keep = len(rankedPages)
	}
	kept := make([]Page[T, P], keep)
	for i := 0; i < keep; i++ {
		kept[i] = rankedPages[i].page
	}
	sort.SliceStable(kept, func(i, j int) bool { return iq.less(kept[i].Param, kept[j].Param) })
	return kept
}
