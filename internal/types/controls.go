package types

// ActionKind tags a control rendered by the console. Per-row controls
// carry the id of the entity they act on in ControlID.Target.
type ActionKind string

const (
	ActionCreateProject ActionKind = "create-project"
	ActionViewProject   ActionKind = "view-project"
	ActionSelectProject ActionKind = "select-project"
	ActionAddMember     ActionKind = "add-member"
	ActionRemoveMember  ActionKind = "remove-member"
	ActionCloseProject  ActionKind = "close-project"
	ActionDeleteProject ActionKind = "delete-project"
	ActionPromoteUser   ActionKind = "promote-user"
	ActionDeleteUser    ActionKind = "delete-user"
	ActionConfirm       ActionKind = "confirm"
	ActionCancel        ActionKind = "cancel"
	ActionRefresh       ActionKind = "refresh"
)

// targetRequired lists the kinds whose control must carry a target id.
// Toolbar variants of add-member and close-project may omit it and fall
// back to the selected project.
var targetRequired = map[ActionKind]bool{
	ActionCreateProject: false,
	ActionViewProject:   true,
	ActionSelectProject: true,
	ActionAddMember:     false,
	ActionRemoveMember:  true,
	ActionCloseProject:  false,
	ActionDeleteProject: true,
	ActionPromoteUser:   true,
	ActionDeleteUser:    true,
	ActionConfirm:       false,
	ActionCancel:        false,
	ActionRefresh:       false,
}

func (k ActionKind) Known() bool {
	_, ok := targetRequired[k]
	return ok
}

func (k ActionKind) RequiresTarget() bool {
	return targetRequired[k]
}

// ControlID identifies one interactive control instance.
type ControlID struct {
	Kind   ActionKind `json:"kind"`
	Target uint       `json:"target,omitempty"`
}

// Valid reports whether the identifier names a known action and carries a
// target where one is required.
func (c ControlID) Valid() bool {
	if !c.Kind.Known() {
		return false
	}
	return !c.Kind.RequiresTarget() || c.Target != 0
}

type DialogKind string

const (
	DialogNone          DialogKind = ""
	DialogCreateProject DialogKind = "create-project"
	DialogAddMember     DialogKind = "add-member"
	DialogCloseProject  DialogKind = "close-project"
	DialogDeleteProject DialogKind = "delete-project"
	DialogPromoteUser   DialogKind = "promote-user"
	DialogDeleteUser    DialogKind = "delete-user"
)

// NeedsTarget reports whether a dialog of this kind acts on an entity.
func (d DialogKind) NeedsTarget() bool {
	return d != DialogNone && d != DialogCreateProject
}

// Region names a display area whose content is produced by one population
// function.
type Region string

const (
	RegionUsersTable          Region = "users-table"
	RegionManagedProjects     Region = "managed-projects"
	RegionMemberProjects      Region = "member-projects"
	RegionProjectDetail       Region = "project-detail"
	RegionMemberList          Region = "member-list"
	RegionAddMemberCandidates Region = "add-member-candidates"
)
