package server

import (
	"net/url"
	"strings"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// RouteInfo is a snapshot of the currently matched route, as seen by a
// component reading from a RouteContext.
type RouteInfo struct {
	Pathname    string
	QueryParams map[string]string
	PathParams  map[string]string
	CatchAll    []string
	Hash        string
}

// RouteContext exposes the session's current route as Signal-backed
// reactive fields, so a component can read ctx.Route().Pathname() (etc)
// and be re-rendered automatically on navigation, the same way it would
// read any other Signal. The teacher's RouteNavigator is otherwise
// HTTP-request scoped (CurrentPath/CurrentParams are plain fields read
// once per request); this wraps it in persistent Signals updated on
// every Navigate.
type RouteContext struct {
	pathname    *reactive.Signal[string]
	queryParams *reactive.Signal[map[string]string]
	pathParams  *reactive.Signal[map[string]string]
	catchAll    *reactive.Signal[[]string]
	hash        *reactive.Signal[string]
}

// NewRouteContext creates an empty RouteContext.
func NewRouteContext() *RouteContext {
	return &RouteContext{
		pathname:    reactive.NewSignal(""),
		queryParams: reactive.NewSignal(map[string]string{}),
		pathParams:  reactive.NewSignal(map[string]string{}),
		catchAll:    reactive.NewSignal([]string{}),
		hash:        reactive.NewSignal(""),
	}
}

func (rc *RouteContext) Pathname() string               { return rc.pathname.Get() }
func (rc *RouteContext) QueryParams() map[string]string { return rc.queryParams.Get() }
func (rc *RouteContext) PathParams() map[string]string  { return rc.pathParams.Get() }
func (rc *RouteContext) CatchAll() []string             { return rc.catchAll.Get() }
func (rc *RouteContext) Hash() string                   { return rc.hash.Get() }

// Info returns a full, non-reactive snapshot (reads every field, so a
// tracked caller depends on the whole route rather than one piece of it).
func (rc *RouteContext) Info() RouteInfo {
	return RouteInfo{
		Pathname:    rc.Pathname(),
		QueryParams: rc.QueryParams(),
		PathParams:  rc.PathParams(),
		CatchAll:    rc.CatchAll(),
		Hash:        rc.Hash(),
	}
}

// update applies a new RouteInfo in one Batch, so a navigate's five
// field writes coalesce into a single re-render instead of firing once
// per Signal.
func (rc *RouteContext) update(info RouteInfo) {
	reactive.Batch(func() {
		rc.pathname.Set(info.Pathname)
		rc.queryParams.Set(info.QueryParams)
		rc.pathParams.Set(info.PathParams)
		rc.catchAll.Set(info.CatchAll)
		rc.hash.Set(info.Hash)
	})
}

// routeInfoFromMatch builds a RouteInfo from a navigation's canonical
// path, raw query string, and matched path params. Catch-all segments
// are stored by the radix tree as a single "/"-joined param value (see
// pkg/router/tree.go); any param whose value contains a slash is treated
// as the catch-all and split back into segments here.
func routeInfoFromMatch(canonPath, rawQuery string, params map[string]string) RouteInfo {
	info := RouteInfo{
		Pathname:    canonPath,
		QueryParams: parseQueryParams(rawQuery),
		PathParams:  make(map[string]string, len(params)),
	}
	for k, v := range params {
		if strings.Contains(v, "/") {
			info.CatchAll = strings.Split(v, "/")
			continue
		}
		info.PathParams[k] = v
	}
	return info
}

func parseQueryParams(rawQuery string) map[string]string {
	out := make(map[string]string)
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return out
	}
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
