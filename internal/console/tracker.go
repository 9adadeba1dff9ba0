package console

import "github.com/monocle-dev/projectdesk/internal/types"

// Tracker remembers the last click counter seen for every control of a
// session. A control fired when its counter went up since the previous
// event; controls that merely re-rendered keep their counter.
type Tracker struct {
	seen map[trackedControl]int
}

// trackedControl keeps the confirm and cancel buttons of different dialogs
// apart.
type trackedControl struct {
	id     types.ControlID
	dialog types.DialogKind
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[trackedControl]int)}
}

// Fired records the counters in controls and returns the single control
// whose counter increased. Events where no counter increased, or where
// more than one did, report nothing. A counter lower than the recorded one
// means the control was rendered anew and only resets the record.
func (t *Tracker) Fired(controls []ControlState) (ControlState, bool) {
	var (
		fired ControlState
		count int
	)

	for _, c := range controls {
		key := trackedControl{id: c.ID(), dialog: c.Dialog}
		previous := t.seen[key]
		t.seen[key] = c.Clicks

		if c.Clicks > previous {
			fired = c
			count++
		}
	}

	if count != 1 {
		return ControlState{}, false
	}

	return fired, true
}
