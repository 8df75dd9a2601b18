package server

import (
	"sync"

	"github.com/pulseframework/pulse/pkg/state"
)

// trackedComponentState pairs a state.Instance with the signature and
// zero value Drain/Hydrate need to serialize and validate it.
type trackedComponentState struct {
	signature string
	inst      *state.Instance
	zero      any
}

var (
	hotReloadSnapshotOnce sync.Once
	hotReloadSnapshot     *state.Snapshot
)

// loadedHotReloadSnapshot lazily loads the handoff file left by a
// previous process, once per process lifetime. A process that wasn't
// started by pkg/hotreload's restart finds no file and gets an empty,
// harmless Snapshot.
func loadedHotReloadSnapshot() *state.Snapshot {
	hotReloadSnapshotOnce.Do(func() {
		snap, err := state.LoadSnapshotFile(state.SnapshotPath())
		if err != nil {
			snap = state.NewSnapshot()
		}
		hotReloadSnapshot = snap
	})
	return hotReloadSnapshot
}

// TrackState registers inst (created via state.Define) under key so a
// dev-mode restart can drain it before this process exits and hydrate a
// same-keyed instance after the new process starts. key must be stable
// across the restart; callers typically derive it from the route path
// plus the component's position in that route's tree.
func (s *Session) TrackState(key, signature string, inst *state.Instance, zero any) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.stateTracked == nil {
		s.stateTracked = make(map[string]trackedComponentState)
	}
	s.stateTracked[key] = trackedComponentState{signature: signature, inst: inst, zero: zero}
}

// RestoreState attempts to hydrate inst from whatever hot-reload
// snapshot this process was started with. Returns false if there's no
// snapshot, no entry for key, or the entry's signature no longer
// matches - e.g. the component's persisted fields changed shape since
// the snapshot was taken, in which case applying it would be silent
// data corruption rather than a resume.
func (s *Session) RestoreState(key, signature string, inst *state.Instance, zero any) bool {
	snap := loadedHotReloadSnapshot()
	ok, err := snap.Restore(key, signature, inst, zero)
	if err != nil {
		s.logger.Warn("state restore failed", "key", key, "error", err)
		return false
	}
	return ok
}

// drainTrackedState drains every instance this session has tracked into
// snap. Called from Server.Shutdown just before a dev-mode process
// exit, never during normal connection teardown.
func (s *Session) drainTrackedState(snap *state.Snapshot) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	for key, t := range s.stateTracked {
		if err := snap.Put(key, t.signature, t.inst, t.zero); err != nil {
			s.logger.Warn("state drain failed", "key", key, "error", err)
		}
	}
}
