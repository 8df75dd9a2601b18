// Package pulse provides the public API for the Pulse web framework.
//
// This is the recommended import for most applications:
//
//	import "github.com/pulseframework/pulse"
//
// Usage:
//
//	ctx := pulse.UseCtx()
//	count := pulse.NewSignal(0)
//	form := pulse.UseForm(MyFormData{})
//	search := pulse.URLParam("q", "", pulse.Replace, pulse.Debounce(300*time.Millisecond))
package pulse

import (
	"context"
	"time"

	corereactive "github.com/pulseframework/pulse/pkg/reactive"
	"github.com/pulseframework/pulse/pkg/server"
	"github.com/pulseframework/pulse/pkg/urlparam"
	"github.com/pulseframework/pulse/pkg/features/form"
	"github.com/pulseframework/pulse/pkg/vdom"
)

// =============================================================================
// Context (server.Ctx exposed as pulse.Ctx)
// =============================================================================

// Ctx is the runtime context with full HTTP/navigation/session access.
// This is server.Ctx - the rich context that includes Path(), Param(),
// Query(), QueryParam(), Navigate(), User(), Session(), etc.
type Ctx = server.Ctx

// UseCtx returns the current runtime context.
// Returns nil if called outside of a render/effect/handler context.
//
// Example:
//
//	func MyComponent() pulse.Component {
//	    return pulse.Func(func() *pulse.VNode {
//	        ctx := pulse.UseCtx()
//	        path := ctx.Path()
//	        userId := ctx.Param("id")
//	        search := ctx.QueryParam("q")
//	        return Div(Text(path))
//	    })
//	}
func UseCtx() Ctx {
	raw := corereactive.UseCtx()
	if raw == nil {
		return nil
	}
	// Type-assert from core pulse.Ctx to server.Ctx
	if ctx, ok := raw.(server.Ctx); ok {
		return ctx
	}
	return nil
}

// =============================================================================
// Navigation options (re-export from server)
// =============================================================================

// NavigateOption configures programmatic navigation.
type NavigateOption = server.NavigateOption

// WithReplace replaces the current history entry instead of pushing.
var WithReplace = server.WithReplace

// WithNavigateParams adds query parameters to the navigation URL.
var WithNavigateParams = server.WithNavigateParams

// WithoutScroll disables scrolling to top after navigation.
var WithoutScroll = server.WithoutScroll

// =============================================================================
// Reactive primitives (re-export from pkg/pulse)
// =============================================================================

// NewSignal creates a new reactive signal with the given initial value.
//
// Example:
//
//	count := pulse.NewSignal(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSignal[T any](initial T, opts ...SignalOption) *Signal[T] {
	return corereactive.NewSignal(initial, opts...)
}

// NewMemo creates a new computed value that automatically tracks dependencies.
//
// Example:
//
//	doubled := pulse.NewMemo(func() int {
//	    return count.Get() * 2
//	})
func NewMemo[T any](compute func() T) *Memo[T] {
	return corereactive.NewMemo(compute)
}

// CreateEffect registers a side effect that runs when dependencies change.
//
// Example:
//
//	pulse.CreateEffect(func() pulse.Cleanup {
//	    fmt.Println("Count changed to:", count.Get())
//	    return nil
//	})
var CreateEffect = corereactive.CreateEffect

// NewAction creates a structured async mutation with state tracking.
func NewAction[A any, R any](do func(ctx context.Context, arg A) (R, error), opts ...ActionOption) *Action[A, R] {
	return corereactive.NewAction(do, opts...)
}

// NewRef creates a mutable reference (primarily for DOM elements).
func NewRef[T any](initial T) *Ref[T] {
	return corereactive.NewRef(initial)
}

// Batch groups multiple signal updates into a single notification.
var Batch = corereactive.Batch

// Tx is an alias for Batch.
var Tx = corereactive.Tx

// TxNamed is a named transaction for observability.
var TxNamed = corereactive.TxNamed

// Untracked reads signals without creating subscriptions.
var Untracked = corereactive.Untracked

// UntrackedGet reads a signal's value without subscribing.
func UntrackedGet[T any](s *Signal[T]) T {
	return corereactive.UntrackedGet(s)
}

// Signal type aliases
type Signal[T any] = corereactive.Signal[T]
type Memo[T any] = corereactive.Memo[T]
type Action[A any, R any] = corereactive.Action[A, R]
type Ref[T any] = corereactive.Ref[T]
type Effect = corereactive.Effect
type Cleanup = corereactive.Cleanup
type SignalOption = corereactive.SignalOption

// Signal options
var Transient = corereactive.Transient
var PersistKey = corereactive.PersistKey

// =============================================================================
// Effect helpers (re-export from pkg/pulse)
// =============================================================================

// Interval runs a function at regular intervals.
var Interval = corereactive.Interval

// Subscribe subscribes to a stream of values.
func Subscribe[T any](stream Stream[T], fn func(T), opts ...SubscribeOption) Cleanup {
	return corereactive.Subscribe(stream, fn, opts...)
}

// GoLatest runs async work with key coalescing and cancellation.
func GoLatest[K comparable, R any](
	key K,
	work func(ctx context.Context, key K) (R, error),
	apply func(result R, err error),
	opts ...GoLatestOption,
) Cleanup {
	return corereactive.GoLatest(key, work, apply, opts...)
}

// Timeout runs a function after a delay.
var Timeout = corereactive.Timeout

// Effect options
type EffectOption = corereactive.EffectOption
type IntervalOption = corereactive.IntervalOption
type SubscribeOption = corereactive.SubscribeOption
type GoLatestOption = corereactive.GoLatestOption
type TimeoutOption = corereactive.TimeoutOption
type ActionOption = corereactive.ActionOption

var AllowWrites = corereactive.AllowWrites
var EffectTxName = corereactive.EffectTxName
var IntervalTxName = corereactive.IntervalTxName
var IntervalImmediate = corereactive.IntervalImmediate
var SubscribeTxName = corereactive.SubscribeTxName
var GoLatestTxName = corereactive.GoLatestTxName
var GoLatestForceRestart = corereactive.GoLatestForceRestart
var TimeoutTxName = corereactive.TimeoutTxName
var ActionTxName = corereactive.ActionTxName

// Stream is an interface for event streams (used with Subscribe).
type Stream[T any] = corereactive.Stream[T]

// ActionState represents the current state of an action.
type ActionState = corereactive.ActionState

// ActionState constants
const (
	ActionIdle    = corereactive.ActionIdle
	ActionRunning = corereactive.ActionRunning
	ActionSuccess = corereactive.ActionSuccess
	ActionError   = corereactive.ActionError
)

// =============================================================================
// Errors (re-export from pkg/pulse)
// =============================================================================

var ErrBudgetExceeded = corereactive.ErrBudgetExceeded
var ErrQueueFull = corereactive.ErrQueueFull
var ErrActionRunning = corereactive.ErrActionRunning
var ErrEffectContext = corereactive.ErrEffectContext
var ErrGoLatestContext = corereactive.ErrGoLatestContext

type HTTPError = corereactive.HTTPError

var BadRequest = corereactive.BadRequest
var BadRequestf = corereactive.BadRequestf
var Unauthorized = corereactive.Unauthorized
var Forbidden = corereactive.Forbidden
var NotFound = corereactive.NotFound
var Conflict = corereactive.Conflict
var UnprocessableEntity = corereactive.UnprocessableEntity
var InternalError = corereactive.InternalError
var ServiceUnavailable = corereactive.ServiceUnavailable

// =============================================================================
// Context API (re-export from pkg/pulse)
// =============================================================================

// CreateContext creates a new context type for dependency injection.
func CreateContext[T any](defaultValue T) *Context[T] {
	return corereactive.CreateContext(defaultValue)
}

// Context is a reactive context for dependency injection.
type Context[T any] = corereactive.Context[T]

// SetContext sets a value in the component context.
var SetContext = corereactive.SetContext

// GetContext retrieves a value from the component context.
var GetContext = corereactive.GetContext

// =============================================================================
// URLParam (re-export from pkg/urlparam)
// =============================================================================

// URLParam creates a URL parameter synced with query string.
// This is a hook-like API and MUST be called unconditionally during render.
//
// Example:
//
//	// Simple string param
//	query := pulse.URLParam("q", "")
//
//	// With options
//	search := pulse.URLParam("q", "", pulse.Replace, pulse.Debounce(300*time.Millisecond))
//
//	// Struct param with flat encoding
//	type Filters struct {
//	    Category string `url:"cat"`
//	    SortBy   string `url:"sort"`
//	}
//	filters := pulse.URLParam("", Filters{}, pulse.Encoding(pulse.URLEncodingFlat))
func URLParam[T any](key string, def T, opts ...URLParamOption) *urlparam.URLParam[T] {
	return urlparam.Param(key, def, opts...)
}

// URLParamOption configures URL parameter behavior.
type URLParamOption = urlparam.URLParamOption

// URL parameter mode options
var (
	// Push creates a new history entry (default behavior).
	Push URLParamOption = urlparam.Push

	// Replace updates URL without creating history entry (use for filters, search).
	Replace URLParamOption = urlparam.Replace
)

// Debounce delays URL updates by the specified duration.
// Use this for search inputs to avoid spamming the history.
//
// Example:
//
//	search := pulse.URLParam("q", "", pulse.Replace, pulse.Debounce(300*time.Millisecond))
func Debounce(d time.Duration) URLParamOption {
	return urlparam.Debounce(d)
}

// Encoding sets the URL encoding mode for complex types.
//
// Example:
//
//	filters := pulse.URLParam("", Filters{}, pulse.Encoding(pulse.URLEncodingFlat))
func Encoding(e URLEncoding) URLParamOption {
	return urlparam.WithEncoding(e)
}

// URLEncoding specifies how complex types are serialized to URLs.
type URLEncoding = urlparam.Encoding

const (
	// URLEncodingFlat serializes structs as flat params: ?cat=tech&sort=asc
	URLEncodingFlat URLEncoding = urlparam.EncodingFlat

	// URLEncodingJSON serializes as base64-encoded JSON: ?filter=eyJjYXQiOiJ0ZWNoIn0
	URLEncodingJSON URLEncoding = urlparam.EncodingJSON

	// URLEncodingComma serializes arrays as comma-separated: ?tags=go,web,api
	URLEncodingComma URLEncoding = urlparam.EncodingComma
)

// =============================================================================
// Form (re-export from pkg/features/form)
// =============================================================================

// UseForm creates a reactive form handler bound to the given struct type.
// This is a hook-like API and MUST be called unconditionally during render.
//
// Example:
//
//	type ContactForm struct {
//	    Name    string `form:"name" validate:"required,min=2"`
//	    Email   string `form:"email" validate:"required,email"`
//	    Message string `form:"message" validate:"required"`
//	}
//
//	form := pulse.UseForm(ContactForm{})
//	if form.Validate() {
//	    data := form.Values()
//	}
func UseForm[T any](initial T) *form.Form[T] {
	return form.UseForm(initial)
}

// Form is a type-safe form handler with validation support.
type Form[T any] = form.Form[T]

// Validator is an interface for form field validation.
type Validator = form.Validator

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc = form.ValidatorFunc

// ValidationError represents a validation failure.
type ValidationError = form.ValidationError

// Validators (functions that return Validator)

// Required validates that the value is non-empty.
func Required(msg string) Validator { return form.Required(msg) }

// MinLength validates that a string has at least n characters.
func MinLength(n int, msg string) Validator { return form.MinLength(n, msg) }

// MaxLength validates that a string has at most n characters.
func MaxLength(n int, msg string) Validator { return form.MaxLength(n, msg) }

// Pattern validates that a string matches the given regular expression.
func Pattern(pattern, msg string) Validator { return form.Pattern(pattern, msg) }

// Email validates that the value is a valid email address.
func Email(msg string) Validator { return form.Email(msg) }

// URL validates that the value is a valid URL.
func URL(msg string) Validator { return form.URL(msg) }

// UUID validates that the value is a valid UUID.
func UUID(msg string) Validator { return form.UUID(msg) }

// Alpha validates that the value contains only ASCII letters.
func Alpha(msg string) Validator { return form.Alpha(msg) }

// AlphaNumeric validates that the value contains only letters and digits.
func AlphaNumeric(msg string) Validator { return form.AlphaNumeric(msg) }

// Numeric validates that the value contains only digits.
func Numeric(msg string) Validator { return form.Numeric(msg) }

// Phone validates that the value looks like a phone number.
func Phone(msg string) Validator { return form.Phone(msg) }

// Min validates that a numeric value is >= n.
func Min(n any, msg string) Validator { return form.Min(n, msg) }

// Max validates that a numeric value is <= n.
func Max(n any, msg string) Validator { return form.Max(n, msg) }

// Between validates that a numeric value is between min and max (inclusive).
func Between(min, max any, msg string) Validator { return form.Between(min, max, msg) }

// Positive validates that a numeric value is > 0.
func Positive(msg string) Validator { return form.Positive(msg) }

// NonNegative validates that a numeric value is >= 0.
func NonNegative(msg string) Validator { return form.NonNegative(msg) }

// DateAfter validates that a date/time is after the given time.
func DateAfter(t time.Time, msg string) Validator { return form.DateAfter(t, msg) }

// DateBefore validates that a date/time is before the given time.
func DateBefore(t time.Time, msg string) Validator { return form.DateBefore(t, msg) }

// Future validates that a date/time is in the future.
func Future(msg string) Validator { return form.Future(msg) }

// Past validates that a date/time is in the past.
func Past(msg string) Validator { return form.Past(msg) }

// Custom creates a validator from a custom function.
func Custom(fn func(value any) error) Validator { return form.Custom(fn) }

// EqualTo returns a validator that checks if the value equals another field.
func EqualTo(field string, msg string) *form.EqualToField { return form.EqualTo(field, msg) }

// NotEqualTo returns a validator that ensures the value differs from another field.
func NotEqualTo(field string, msg string) *form.NotEqualToField { return form.NotEqualTo(field, msg) }

// Async creates an async validator for server-side checks.
func Async(fn func(value any) (error, bool)) *form.AsyncValidator { return form.Async(fn) }

// =============================================================================
// Component/VNode (re-export from pkg/vdom)
// =============================================================================

// Component is anything that can render to a VNode.
type Component = vdom.Component

// VNode represents a virtual DOM node.
type VNode = vdom.VNode

// Props holds attributes and event handlers.
type Props = vdom.Props

// VKind is the node type discriminator.
type VKind = vdom.VKind

// VKind constants
const (
	KindElement   = vdom.KindElement
	KindText      = vdom.KindText
	KindFragment  = vdom.KindFragment
	KindComponent = vdom.KindComponent
	KindRaw       = vdom.KindRaw
)

// Func wraps a render function as a Component.
// This is the primary way to create stateful components.
//
// Example:
//
//	func Counter(initial int) pulse.Component {
//	    return pulse.Func(func() *pulse.VNode {
//	        count := pulse.NewSignal(initial)
//	        return Div(
//	            H1(Textf("Count: %d", count.Get())),
//	            Button(OnClick(count.Inc), Text("+")),
//	        )
//	    })
//	}
func Func(render func() *vdom.VNode) vdom.Component {
	return vdom.Func(render)
}

// =============================================================================
// Configuration (re-export from pkg/pulse)
// =============================================================================

// DevMode enables development-time validation.
var DevMode = &corereactive.DevMode
