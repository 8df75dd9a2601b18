package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot is the on-disk handoff a dev-mode process writes just before
// a hot-reload restart and the next process reads on startup: one
// DrainedPayload per caller-chosen key, each tagged with the Signature
// of the Instance it was drained from so Restore can refuse a payload
// whose shape has since changed.
type Snapshot struct {
	mu         sync.Mutex
	Entries    map[string]DrainedPayload `json:"entries"`
	Signatures map[string]string         `json:"signatures"`
}

// NewSnapshot returns an empty Snapshot ready to Put into.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Entries:    make(map[string]DrainedPayload),
		Signatures: make(map[string]string),
	}
}

// Put drains inst and stores the result under key, tagged with
// signature (normally state.Signature[T]() for inst's backing type).
func (s *Snapshot) Put(key, signature string, inst *Instance, zero any) error {
	payload, err := Drain(inst, zero)
	if err != nil {
		return fmt.Errorf("state: snapshot %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[key] = *payload
	s.Signatures[key] = signature
	return nil
}

// Restore looks up key and, if its recorded signature matches the
// caller's current signature, Hydrates inst from the stored payload.
// Reports false (with no error) for a missing key or a signature
// mismatch - both mean "nothing usable here", not a failure.
func (s *Snapshot) Restore(key, signature string, inst *Instance, zero any) (bool, error) {
	s.mu.Lock()
	have, hasSig := s.Signatures[key]
	payload, hasEntry := s.Entries[key]
	s.mu.Unlock()

	if !hasSig || !hasEntry || !SignaturesCompatible(have, signature) {
		return false, nil
	}
	if err := Hydrate(inst, zero, &payload); err != nil {
		return false, err
	}
	return true, nil
}

// SnapshotPath resolves where the handoff file lives: PULSE_STATE_SNAPSHOT
// if set (the dev-reload supervisor sets this to a path shared by the
// process it's about to kill and the one it's about to start), otherwise
// a fixed name under the OS temp dir.
func SnapshotPath() string {
	if p := os.Getenv("PULSE_STATE_SNAPSHOT"); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "pulse-hotreload-state.json")
}

// LoadSnapshotFile reads and decodes a Snapshot previously written by
// SaveFile. A missing file is not an error - it means this is a cold
// start, not a post-restart resume - and returns an empty Snapshot.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, err
	}
	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, err
	}
	if snap.Entries == nil {
		snap.Entries = make(map[string]DrainedPayload)
	}
	if snap.Signatures == nil {
		snap.Signatures = make(map[string]string)
	}
	return snap, nil
}

// SaveFile writes the snapshot to path and removes it on first
// successful LoadSnapshotFile elsewhere isn't this function's job -
// callers that want one-shot consumption should os.Remove(path)
// themselves after a successful Restore pass.
func (s *Snapshot) SaveFile(path string) error {
	s.mu.Lock()
	data, err := json.Marshal(s)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
