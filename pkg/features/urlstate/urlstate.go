package urlstate

import (
	"fmt"
	"time"

	"github.com/pulseframework/pulse/pkg/reactive"
	"github.com/pulseframework/pulse/pkg/server"
)

// currentCtx returns the server context for the render/handler currently
// running on this goroutine, or nil outside of one (e.g. in a unit test
// that constructs a URLState without a request in flight).
func currentCtx() server.Ctx {
	raw := reactive.UseCtx()
	if raw == nil {
		return nil
	}
	ctx, _ := raw.(server.Ctx)
	return ctx
}

// initialValueFromQuery reads the starting value for key out of the
// current request's query string, falling back to defaultValue when
// there's no request in flight or the parameter is absent.
func initialValueFromQuery[T any](key string, deserializer func(string) T, defaultValue T) T {
	ctx := currentCtx()
	if ctx == nil {
		return defaultValue
	}
	raw := ctx.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	return deserializer(raw)
}

// URLState represents a reactive state synced with a URL parameter.
type URLState[T any] struct {
	key          string
	defaultValue T
	signal       *reactive.Signal[T]
	serializer   func(T) string
	deserializer func(string) T
	debounce     time.Duration
	replace      bool

	// Internal
	lastUpdate time.Time
	timer      *time.Timer
}

// Use creates a new URLState bound to the given query parameter key. If a
// request is in flight on the calling goroutine (render or handler) and its
// query string carries key, the state starts from that value instead of
// defaultValue.
func Use[T any](key string, defaultValue T) *URLState[T] {
	deserializer := DefaultDeserializer(defaultValue)
	initial := initialValueFromQuery(key, deserializer, defaultValue)

	u := &URLState[T]{
		key:          key,
		defaultValue: defaultValue,
		signal:       reactive.NewSignal(initial),
		serializer:   DefaultSerializer(defaultValue),
		deserializer: deserializer,
	}

	return u
}

// Get returns the current value.
func (u *URLState[T]) Get() T {
	return u.signal.Get()
}

// Set updates the value and the URL.
func (u *URLState[T]) Set(value T) {
	u.signal.Set(value)
	u.updateURL(value)
}

// Replace updates the value and replaces the current URL history entry.
func (u *URLState[T]) Replace(value T) {
	u.replace = true
	u.Set(value)
	u.replace = false // Reset for next valid Set? Or should Replace be persistent option?
	// API spec says Replace(value) is a method.
}

// Reset resets the value to the default.
func (u *URLState[T]) Reset() {
	u.Set(u.defaultValue)
}

// IsSet returns true if the current value is different from the default.
func (u *URLState[T]) IsSet() bool {
	// Simple equality check. For slices/maps might need deeper check.
	// basic equality for now.
	return fmt.Sprintf("%v", u.Get()) != fmt.Sprintf("%v", u.defaultValue)
}

// Debounce sets the debounce duration for URL updates.
func (u *URLState[T]) Debounce(d time.Duration) *URLState[T] {
	u.debounce = d
	return u
}

// Serialize sets a custom serializer.
func (u *URLState[T]) Serialize(fn func(T) string) *URLState[T] {
	u.serializer = fn
	return u
}

// Deserialize sets a custom deserializer.
func (u *URLState[T]) Deserialize(fn func(string) T) *URLState[T] {
	u.deserializer = fn
	return u
}

// Internal update logic
func (u *URLState[T]) updateURL(value T) {
	str := u.serializer(value)

	// Debounce logic
	if u.debounce > 0 {
		if u.timer != nil {
			u.timer.Stop()
		}
		u.timer = time.AfterFunc(u.debounce, func() {
			u.performNavigation(str)
		})
		return
	}

	u.performNavigation(str)
}

func (u *URLState[T]) performNavigation(value string) {
	ctx := currentCtx()
	if ctx == nil {
		return
	}

	q := ctx.Query()
	if value == u.serializer(u.defaultValue) {
		q.Del(u.key)
	} else {
		q.Set(u.key, value)
	}

	path := ctx.Request().URL.Path
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	opts := []server.NavigateOption{server.WithoutScroll()}
	if u.replace {
		opts = append(opts, server.WithReplace())
	}
	ctx.Navigate(path, opts...)
}
