package console

import (
	"testing"

	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestTrackerSelectsIncreasedControl(t *testing.T) {
	tracker := NewTracker()

	remove7 := ControlState{Kind: types.ActionRemoveMember, Target: 7}
	remove8 := ControlState{Kind: types.ActionRemoveMember, Target: 8}

	_, fired := tracker.Fired([]ControlState{remove7, remove8})
	assert.False(t, fired, "initial render")

	remove8.Clicks = 1
	control, fired := tracker.Fired([]ControlState{remove7, remove8})
	assert.True(t, fired)
	assert.Equal(t, types.ControlID{Kind: types.ActionRemoveMember, Target: 8}, control.ID())

	_, fired = tracker.Fired([]ControlState{remove7, remove8})
	assert.False(t, fired, "re-render echo must not fire again")

	remove7.Clicks = 1
	control, fired = tracker.Fired([]ControlState{remove7, remove8})
	assert.True(t, fired)
	assert.Equal(t, uint(7), control.Target)
}

func TestTrackerAmbiguousAndReset(t *testing.T) {
	tracker := NewTracker()

	a := ControlState{Kind: types.ActionPromoteUser, Target: 1, Clicks: 1}
	b := ControlState{Kind: types.ActionPromoteUser, Target: 2, Clicks: 1}

	_, fired := tracker.Fired([]ControlState{a, b})
	assert.False(t, fired, "two increases are ambiguous")

	a.Clicks = 0
	_, fired = tracker.Fired([]ControlState{a, b})
	assert.False(t, fired, "a re-rendered control resets its counter")

	a.Clicks = 1
	control, fired := tracker.Fired([]ControlState{a, b})
	assert.True(t, fired)
	assert.Equal(t, uint(1), control.Target)

	_, fired = tracker.Fired(nil)
	assert.False(t, fired)
}

func TestTrackerKeepsDialogButtonsApart(t *testing.T) {
	tracker := NewTracker()

	createConfirm := ControlState{Kind: types.ActionConfirm, Dialog: types.DialogCreateProject, Clicks: 1}
	control, fired := tracker.Fired([]ControlState{createConfirm})
	assert.True(t, fired)
	assert.Equal(t, types.DialogCreateProject, control.Dialog)

	deleteConfirm := ControlState{Kind: types.ActionConfirm, Dialog: types.DialogDeleteProject, Clicks: 1}
	control, fired = tracker.Fired([]ControlState{deleteConfirm})
	assert.True(t, fired, "a fresh confirm button of another dialog counts from zero")
	assert.Equal(t, types.DialogDeleteProject, control.Dialog)

	_, fired = tracker.Fired([]ControlState{createConfirm, deleteConfirm})
	assert.False(t, fired)
}
