// Package views turns loaded entities into display trees. Builders are
// pure: they never touch the store and only render action controls the
// acting user is allowed to use.
package views

import (
	"github.com/monocle-dev/projectdesk/internal/types"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantSuccess   Variant = "success"
	VariantInfo      Variant = "info"
	VariantWarning   Variant = "warning"
	VariantDanger    Variant = "danger"
)

// Control is a clickable element. Its ID is echoed back in console events.
type Control struct {
	ID      types.ControlID `json:"id"`
	Label   string          `json:"label"`
	Variant Variant         `json:"variant"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type Row struct {
	Key      uint              `json:"key"`
	Cells    map[string]string `json:"cells"`
	Controls []Control         `json:"controls,omitempty"`
	Note     string            `json:"note,omitempty"`
	Tooltip  string            `json:"tooltip,omitempty"`
}

type Table struct {
	Region     types.Region `json:"region"`
	Columns    []Column     `json:"columns"`
	Rows       []Row        `json:"rows"`
	Selectable bool         `json:"selectable"`
	Empty      string       `json:"empty,omitempty"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Detail struct {
	Region   types.Region `json:"region"`
	Key      uint         `json:"key,omitempty"`
	Title    string       `json:"title"`
	Badge    string       `json:"badge,omitempty"`
	Fields   []Field      `json:"fields,omitempty"`
	Controls []Control    `json:"controls,omitempty"`
	Links    []Link       `json:"links,omitempty"`
}

type Item struct {
	Key      uint      `json:"key"`
	Text     string    `json:"text"`
	Controls []Control `json:"controls,omitempty"`
}

type List struct {
	Region   types.Region `json:"region"`
	Items    []Item       `json:"items"`
	Empty    string       `json:"empty,omitempty"`
	Controls []Control    `json:"controls,omitempty"`
}

func control(kind types.ActionKind, target uint, label string, variant Variant) Control {
	return Control{
		ID:      types.ControlID{Kind: kind, Target: target},
		Label:   label,
		Variant: variant,
	}
}
