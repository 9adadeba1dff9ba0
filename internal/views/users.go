package views

import (
	"strconv"

	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/types"
)

const selfNote = "Cannot modify self"

// UsersTable renders the admin user table. The acting user's own row has
// no controls; promotion is only offered for non-admins.
func UsersTable(users []models.User, actingUserID uint) Table {
	table := Table{
		Region: types.RegionUsersTable,
		Columns: []Column{
			{Key: "id", Title: "ID"},
			{Key: "username", Title: "Username"},
			{Key: "email", Title: "Email"},
			{Key: "type", Title: "Type"},
		},
		Rows:  make([]Row, 0, len(users)),
		Empty: "No users found",
	}

	for _, user := range users {
		row := Row{
			Key: user.ID,
			Cells: map[string]string{
				"id":       strconv.FormatUint(uint64(user.ID), 10),
				"username": user.Username,
				"email":    orDefault(user.Email, "N/A"),
				"type":     userType(user),
			},
		}

		if user.ID == actingUserID {
			row.Note = selfNote
		} else {
			if !user.IsAdmin {
				row.Controls = append(row.Controls, control(types.ActionPromoteUser, user.ID, "Promote to Admin", VariantPrimary))
			}
			row.Controls = append(row.Controls, control(types.ActionDeleteUser, user.ID, "Delete User", VariantDanger))
		}

		table.Rows = append(table.Rows, row)
	}

	return table
}

func userType(user models.User) string {
	if user.IsAdmin {
		return "Admin"
	}
	return "User"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
