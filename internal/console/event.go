package console

import (
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/views"
)

// ControlState is one control of a group as reported by the browser,
// with its click counter. Confirm and cancel buttons name the dialog they
// belong to in Dialog.
type ControlState struct {
	Kind   types.ActionKind `json:"kind"`
	Target uint             `json:"target,omitempty"`
	Dialog types.DialogKind `json:"dialog,omitempty"`
	Clicks int              `json:"clicks"`
}

func (c ControlState) ID() types.ControlID {
	return types.ControlID{Kind: c.Kind, Target: c.Target}
}

// Event is what the browser sends after any control in a group fires.
//
// Click counters belong to a rendered control, identified by its kind,
// target and dialog. A counter only grows while the control stays on
// screen. A control rendered anew starts again from zero, and the browser
// reports that zero with the next event of its group so the recorded value
// is reset before the control can fire again.
//
// Confirm and cancel act on the dialog named by the control, or by Dialog
// when the control names none. Without either they do nothing.
type Event struct {
	Controls  []ControlState    `json:"controls"`
	Path      string            `json:"path,omitempty"`
	Dialog    types.DialogKind  `json:"dialog,omitempty"`
	ProjectID uint              `json:"project_id,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
}

// Actor is the authenticated user behind an event.
type Actor struct {
	UserID    uint
	IsAdmin   bool
	SessionID string
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Outcome is the response to an event or a navigation: the message to
// show, the dialog state, and the content of every region that became
// stale.
type Outcome struct {
	Message         *Message             `json:"message,omitempty"`
	FieldErrors     map[string]string    `json:"field_errors,omitempty"`
	Dialog          DialogState          `json:"dialog"`
	SelectedProject uint                 `json:"selected_project,omitempty"`
	Toolbar         []views.Control      `json:"toolbar,omitempty"`
	Invalidated     []types.Region       `json:"invalidated,omitempty"`
	Regions         map[types.Region]any `json:"regions,omitempty"`
	Redirect        string               `json:"redirect,omitempty"`
}

func (o *Outcome) setMessage(level Level, text string) {
	o.Message = &Message{Level: level, Text: text}
}
