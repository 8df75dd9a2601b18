// Package demo hosts a self-contained component that exercises the
// low-level building blocks most page handlers never touch directly:
// hooks.State for render-local storage, state.Define for a typed
// reactive instance, and query.Use for a session-scoped cached fetch.
package demo

import (
	"fmt"
	"time"

	"github.com/pulseframework/pulse"
	. "github.com/pulseframework/pulse/el"
	"github.com/pulseframework/pulse/pkg/hooks"
	"github.com/pulseframework/pulse/pkg/query"
	"github.com/pulseframework/pulse/pkg/reactive"
	"github.com/pulseframework/pulse/pkg/state"
)

// Task is one row of the board's persisted list.
type Task struct {
	Title string
	Done  bool
}

// boardState is the shape state.Define reflects over. Tasks is a
// reactive.ReactiveSlice rather than a plain []Task so appends and
// per-row toggles don't require rebuilding and re-signaling the whole
// slice on every edit.
type boardState struct {
	Tasks *reactive.ReactiveSlice[Task]
	Draft string
}

// velocityStatus reports how many tasks closed in the last interval.
// Fetched through query.Use so repeated mounts within the same session
// share one cached result instead of one fetch per component instance.
type velocityStatus struct {
	ClosedLastHour int
	CheckedAt      time.Time
}

func fetchVelocity() (velocityStatus, error) {
	return velocityStatus{ClosedLastHour: 3, CheckedAt: time.Now()}, nil
}

// TaskBoard returns a mounted instance of the board component. Wrap
// the call at the embedding site in pulse.Func so it becomes its own
// vdom.Component (and, at the session layer, its own ComponentInstance
// with its own Owner) rather than inlining straight into the caller's
// tree.
func TaskBoard(ctx pulse.Ctx) pulse.Component {
	return pulse.Func(func() *pulse.VNode {
		return renderBoard(ctx)
	})
}

func renderBoard(ctx pulse.Ctx) *pulse.VNode {
	owner := reactive.CurrentOwner()

	// hooks.Init gives the state.Instance a stable identity across
	// this component's re-renders, the same way hooks.State does for
	// a bare value - state.Define itself has no render-order memory
	// of its own.
	const boardKey = "demo.TaskBoard"
	boardSig := state.Signature[boardState]()

	board := hooks.Init(func() *state.Instance {
		initial := boardState{
			Tasks: reactive.NewReactiveSlice([]Task{
				{Title: "Wire up the renderer", Done: true},
				{Title: "Ground pkg/state in a real component", Done: false},
			}),
		}
		inst := state.Define(owner, initial)

		// If this process was just started by a hot-reload restart and
		// the previous process drained a board under the same key with
		// a matching signature, resume it instead of the fresh initial
		// value above. Either way, track the instance so the next
		// restart (if any) can drain it in turn.
		if sess := ctx.Session(); sess != nil {
			sess.RestoreState(boardKey, boardSig, inst, initial)
			sess.TrackState(boardKey, boardSig, inst, initial)
		}

		return inst
	})

	tasks := state.Field[*reactive.ReactiveSlice[Task]](board, "Tasks")
	draft := state.Field[string](board, "Draft")

	// hooks.State is plain render-local storage: it doesn't need to
	// survive a hot-reload restart the way board's fields (persisted
	// through state.Drain) do, so it stays outside boardState.
	expanded := hooks.State(true)

	var velocity *query.QueryResult[velocityStatus]
	if sess := ctx.Session(); sess != nil {
		velocity = query.Use(sess.QueryStore(),
			func() any { return "team-velocity" },
			func(any) (velocityStatus, error) { return fetchVelocity() },
			query.ResultOptions{
				StaleTime:    30 * time.Second,
				GCTime:       5 * time.Minute,
				Enabled:      true,
				FetchOnMount: true,
			},
		)
	}

	addTask := func() {
		title := draft.Get()
		if title == "" {
			return
		}
		tasks.Get().Append(Task{Title: title})
		draft.Set("")
	}

	toggleTask := func(index int) func() {
		return func() {
			list := tasks.Get()
			t := list.At(index)
			t.Done = !t.Done
			list.SetAt(index, t)
		}
	}

	rows := make([]*pulse.VNode, 0, tasks.Get().Len())
	tasks.Get().Range(func(i int, t Task) {
		rows = append(rows, Li(Key(fmt.Sprintf("task-%d", i)),
			Class("flex items-center gap-2 py-1"),
			Input(Type("checkbox"), AttrIf(t.Done, Checked()), OnChange(toggleTask(i))),
			Span(ClassIf(t.Done, "line-through text-gray-400"), Text(t.Title)),
		))
	})

	return Div(Class("border border-gray-200 dark:border-gray-700 rounded-lg p-4 space-y-3"),
		Div(Class("flex items-center justify-between"),
			H2(Class("font-semibold"), Text("Task board")),
			Button(Class("text-sm text-blue-600 dark:text-blue-400"),
				OnClick(func() { expanded.Set(!expanded.Get()) }),
				IfElse(expanded.Get(), Text("Collapse"), Text("Expand")),
			),
		),
		If(expanded.Get(), Fragment(
			Ul(Class("space-y-1"), rows),
			Form(Class("flex gap-2"),
				OnSubmit(func() { addTask() }),
				Input(Class("flex-1 border border-gray-300 dark:border-gray-600 rounded px-2 py-1 bg-transparent"),
					Placeholder("New task"), Value(draft.Get()),
					OnInput(func(v string) { draft.Set(v) }),
				),
				Button(Type("submit"), Class("px-3 py-1 border border-gray-300 dark:border-gray-600 rounded"), Text("Add")),
			),
			velocityView(velocity),
		)),
	)
}

func velocityView(v *query.QueryResult[velocityStatus]) *pulse.VNode {
	if v == nil {
		return Small(Class("text-gray-400"), Text("velocity unavailable outside a live session"))
	}
	if v.IsLoading() {
		return Small(Class("text-gray-400"), Text("checking recent velocity..."))
	}
	if v.IsError() {
		return Small(Class("text-red-500"), Text("velocity check failed: "+v.Error().Error()))
	}
	data := v.Data()
	return Small(Class("text-gray-500 dark:text-gray-400"),
		Textf("%d tasks closed in the last hour, as of %s", data.ClosedLastHour, data.CheckedAt.Format("15:04:05")),
	)
}
