package state

import (
	"strconv"
	"strings"
	"time"

	"github.com/pulseframework/pulse/pkg/features/urlstate"
)

// QueryParam is a URL-query-string-synced field: reading it reads the
// current query value (falling back to its default), and writing it
// updates both the in-memory value and the URL, bidirectionally with the
// route the same way spec's QueryParam[T, name?] annotation does.
//
// Unlike the other reactive fields Define builds from struct tags,
// QueryParam's codec varies by T in ways reflection alone can't resolve
// generically (comma-escaped lists, optional/pointer wrapping), so it's
// constructed explicitly rather than discovered by walking the struct.
type QueryParam[T any] struct {
	state *urlstate.URLState[T]
}

// NewQueryParam binds name to the current request's query string.
func NewQueryParam[T any](name string, defaultValue T) *QueryParam[T] {
	return &QueryParam[T]{state: urlstate.Use(name, defaultValue)}
}

func (q *QueryParam[T]) Get() T { return q.state.Get() }
func (q *QueryParam[T]) Set(v T) { q.state.Set(v) }

// Replace sets the value without pushing a new history entry.
func (q *QueryParam[T]) Replace(v T) { q.state.Replace(v) }

// Reset restores the default value.
func (q *QueryParam[T]) Reset() { q.state.Reset() }

// IsSet reports whether the current value differs from the default.
func (q *QueryParam[T]) IsSet() bool { return q.state.IsSet() }

// StringListCodec implements spec's comma-escaped-list codec: a literal
// comma or backslash in an element is backslash-escaped, elements are
// joined with unescaped commas.
func StringListCodec() (func([]string) string, func(string) []string) {
	encode := func(items []string) string {
		escaped := make([]string, len(items))
		for i, it := range items {
			r := strings.NewReplacer(`\`, `\\`, `,`, `\,`)
			escaped[i] = r.Replace(it)
		}
		return strings.Join(escaped, ",")
	}
	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		var out []string
		var cur strings.Builder
		escaped := false
		for _, r := range s {
			switch {
			case escaped:
				cur.WriteRune(r)
				escaped = false
			case r == '\\':
				escaped = true
			case r == ',':
				out = append(out, cur.String())
				cur.Reset()
			default:
				cur.WriteRune(r)
			}
		}
		out = append(out, cur.String())
		return out
	}
	return encode, decode
}

// TimeCodec encodes/decodes time.Time in RFC3339, the same format the
// rest of the codebase (session persistence, protocol timestamps) uses.
func TimeCodec() (func(time.Time) string, func(string) time.Time) {
	encode := func(t time.Time) string { return t.Format(time.RFC3339) }
	decode := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return encode, decode
}

// IntCodec, FloatCodec and BoolCodec round out the str/int/float/bool/
// time.Time/list codec set spec requires for QueryParam fields.
func IntCodec() (func(int) string, func(string) int) {
	return func(v int) string { return strconv.Itoa(v) },
		func(s string) int { n, _ := strconv.Atoi(s); return n }
}

func FloatCodec() (func(float64) string, func(string) float64) {
	return func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		func(s string) float64 { f, _ := strconv.ParseFloat(s, 64); return f }
}

func BoolCodec() (func(bool) string, func(string) bool) {
	return func(v bool) string { return strconv.FormatBool(v) },
		func(s string) bool { b, _ := strconv.ParseBool(s); return b }
}

// WithSerializer/WithDeserializer let a QueryParam opt into one of the
// codecs above instead of urlstate's default fmt.Sprintf-based one.
func (q *QueryParam[T]) WithCodec(encode func(T) string, decode func(string) T) *QueryParam[T] {
	q.state.Serialize(encode)
	q.state.Deserialize(decode)
	return q
}
