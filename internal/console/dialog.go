package console

import "github.com/monocle-dev/projectdesk/internal/types"

// DialogState is Closed when Kind is empty. An open dialog remembers the
// entity it acts on.
type DialogState struct {
	Kind   types.DialogKind `json:"kind,omitempty"`
	Target uint             `json:"target,omitempty"`
}

func (d DialogState) IsOpen() bool {
	return d.Kind != types.DialogNone
}

// Open moves Closed to Open. It refuses dialogs that need a target when
// none was resolved, and does not replace a dialog that is already open.
func (d *DialogState) Open(kind types.DialogKind, target uint) bool {
	if kind == types.DialogNone || d.IsOpen() {
		return false
	}

	if kind.NeedsTarget() && target == 0 {
		return false
	}

	if !kind.NeedsTarget() {
		target = 0
	}

	*d = DialogState{Kind: kind, Target: target}
	return true
}

func (d *DialogState) Close() {
	*d = DialogState{}
}
