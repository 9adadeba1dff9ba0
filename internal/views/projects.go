package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/types"
)

const notSet = "Not set"

func ProjectStatus(project *models.Project) string {
	if project.IsClosed() {
		return types.StatusCompleted
	}
	return types.StatusActive
}

func endDate(project *models.Project) string {
	if project.EndDate == nil {
		return notSet
	}
	return types.FormatDate(*project.EndDate)
}

func ProjectPath(projectID uint) string {
	return fmt.Sprintf("/projects/%d", projectID)
}

// ProjectsTable renders either the "Projects I Manage" or the "Projects
// I'm a Member Of" table. Rows are selectable; the selection drives the
// toolbar buttons. Projects must have their manager and members loaded.
func ProjectsTable(projects []models.Project, managed bool) Table {
	region := types.RegionMemberProjects
	if managed {
		region = types.RegionManagedProjects
	}

	table := Table{
		Region: region,
		Columns: []Column{
			{Key: "id", Title: "ID"},
			{Key: "name", Title: "Name"},
			{Key: "start_date", Title: "Start Date"},
			{Key: "end_date", Title: "End Date"},
			{Key: "status", Title: "Status"},
			{Key: "manager", Title: "Manager"},
			{Key: "member_count", Title: "Members"},
		},
		Rows:       make([]Row, 0, len(projects)),
		Selectable: true,
		Empty:      "No projects yet",
	}

	for i := range projects {
		project := &projects[i]

		table.Rows = append(table.Rows, Row{
			Key: project.ID,
			Cells: map[string]string{
				"id":           strconv.FormatUint(uint64(project.ID), 10),
				"name":         project.Name,
				"start_date":   types.FormatDate(project.StartDate),
				"end_date":     endDate(project),
				"status":       ProjectStatus(project),
				"manager":      project.Manager.Username,
				"member_count": strconv.Itoa(len(project.Memberships)),
			},
			Controls: []Control{
				control(types.ActionSelectProject, project.ID, "Select", VariantSecondary),
				control(types.ActionViewProject, project.ID, "View Details", VariantPrimary),
			},
			Tooltip: "Members: " + memberNames(project),
		})
	}

	return table
}

func memberNames(project *models.Project) string {
	if len(project.Memberships) == 0 {
		return "None"
	}

	names := make([]string, 0, len(project.Memberships))
	for _, member := range project.Members() {
		names = append(names, member.Username)
	}
	return strings.Join(names, ", ")
}

// ProjectsToolbar renders the buttons above the project tables. Buttons
// that act on a project stay disabled (absent) until one is selected, and
// add/close are only offered to the manager of an open project.
func ProjectsToolbar(selected *models.Project, actingUserID uint) []Control {
	controls := []Control{control(types.ActionCreateProject, 0, "Create New Project", VariantSuccess)}

	if selected != nil {
		controls = append(controls, control(types.ActionViewProject, selected.ID, "View Details", VariantPrimary))

		if selected.IsManagedBy(actingUserID) && !selected.IsClosed() {
			controls = append(controls,
				control(types.ActionAddMember, 0, "Add Member", VariantInfo),
				control(types.ActionCloseProject, 0, "Close Project", VariantWarning),
			)
		}
	}

	return append(controls, control(types.ActionRefresh, 0, "Refresh", VariantSecondary))
}

// ProjectDetail renders the detail card of one project. A nil project
// renders the not-found card.
func ProjectDetail(project *models.Project, actingUserID uint) Detail {
	back := Link{Label: "Back to Projects", Href: "/projects"}

	if project == nil {
		return Detail{
			Region: types.RegionProjectDetail,
			Title:  "Project Not Found",
			Links:  []Link{back},
		}
	}

	detail := Detail{
		Region: types.RegionProjectDetail,
		Key:    project.ID,
		Title:  project.Name,
		Badge:  ProjectStatus(project),
		Fields: []Field{
			{Label: "Start Date", Value: types.FormatDate(project.StartDate)},
			{Label: "End Date", Value: endDate(project)},
			{Label: "Manager", Value: project.Manager.Username},
		},
		Controls: []Control{control(types.ActionRefresh, 0, "Refresh", VariantSecondary)},
		Links:    []Link{back},
	}

	if project.IsManagedBy(actingUserID) {
		if !project.IsClosed() {
			detail.Controls = append(detail.Controls, control(types.ActionCloseProject, project.ID, "Close Project", VariantWarning))
		}
		detail.Controls = append(detail.Controls, control(types.ActionDeleteProject, project.ID, "Delete Project", VariantDanger))
	}

	return detail
}

// MemberList renders the members card. Remove and add controls only
// appear for the manager of an open project.
func MemberList(project *models.Project, actingUserID uint) List {
	list := List{
		Region: types.RegionMemberList,
		Items:  make([]Item, 0, len(project.Memberships)),
		Empty:  "No members yet",
	}

	editable := project.IsManagedBy(actingUserID) && !project.IsClosed()

	for _, member := range project.Members() {
		item := Item{Key: member.ID, Text: member.Username}

		if editable {
			item.Controls = []Control{control(types.ActionRemoveMember, member.ID, "Remove", VariantDanger)}
		}

		list.Items = append(list.Items, item)
	}

	if editable {
		list.Controls = []Control{control(types.ActionAddMember, project.ID, "Add Member", VariantSuccess)}
	}

	return list
}

// CandidateList renders the options of the add-member dialog: users that
// are neither the manager nor already members.
func CandidateList(project *models.Project, users []models.User) List {
	list := List{
		Region: types.RegionAddMemberCandidates,
		Items:  make([]Item, 0, len(users)),
		Empty:  "No users available to add",
	}

	for _, user := range users {
		if project.IsManagedBy(user.ID) || project.HasMember(user.ID) {
			continue
		}
		list.Items = append(list.Items, Item{Key: user.ID, Text: user.Username})
	}

	return list
}
