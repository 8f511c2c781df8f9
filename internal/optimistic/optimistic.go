// Package optimistic implements the client-side mutation contract for
// toggle-style interactions: compute the new local state immediately, issue
// the authoritative call, and revert the local state if the call fails. It
// is implemented once and reused for every like/save/support toggle so the
// paired boolean and counter can never revert independently.
package optimistic

// Do snapshots *state, applies the local mutation, then executes the
// authoritative call. On failure the snapshot is restored and the error
// returned for user-visible surfacing; on success the applied state stands.
// S must be a value type whose copy is a full snapshot (no shared pointers).
func Do[S any](state *S, apply func(*S), exec func() error) error {
	snapshot := *state
	apply(state)
	if err := exec(); err != nil {
		*state = snapshot
		return err
	}
	return nil
}

// ToggleState is the paired boolean/counter every toggle interaction
// maintains: isLiked+likeCount, isSaved+saveCount, isSupporting+count.
type ToggleState struct {
	Active bool
	Count  int64
}

// SetActive flips the toggle on and bumps the counter. Already-active state
// is left untouched so a duplicate click cannot double-count locally.
func (t *ToggleState) SetActive() {
	if t.Active {
		return
	}
	t.Active = true
	t.Count++
}

// SetInactive flips the toggle off and lowers the counter
func (t *ToggleState) SetInactive() {
	if !t.Active {
		return
	}
	t.Active = false
	t.Count--
}

// Toggle applies the desired toggle direction optimistically and reverts
// both the boolean and the counter together when exec fails.
func Toggle(state *ToggleState, active bool, exec func() error) error {
	return Do(state, func(s *ToggleState) {
		if active {
			s.SetActive()
		} else {
			s.SetInactive()
		}
	}, exec)
}
