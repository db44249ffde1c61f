package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/client/services"
)

// adminDashboard renders full-bleed and loops over the management sections
// until the admin backs out.
func (a *App) adminDashboard(ctx context.Context) {
	fmt.Fprintln(a.out, "==== Admin Dashboard ====")

	for {
		choice, err := GetSimpleText(a.reader, "Manage: users / medicines / articles / back", a.out)
		if err != nil {
			return
		}
		switch choice {
		case "users":
			a.usersSection(ctx)
		case "medicines":
			a.medicinesPage(ctx)
		case "articles":
			a.articlesPage(ctx)
		case "back", "":
			return
		default:
			fmt.Fprintln(a.out, "Unknown choice:", choice)
		}
	}
}

// usersSection is the account management page: search, role change, save,
// delete.
func (a *App) usersSection(ctx context.Context) {
	list, err := a.users.List(ctx)
	if err != nil {
		a.reportError("Failed to load users", err)
		return
	}

	term, err := GetSimpleText(a.reader, "Search users by name or email (empty for all)", a.out)
	if err != nil {
		return
	}
	filtered := services.FilterUsers(list, term)

	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return
	}
	for _, u := range filtered {
		joined := ""
		if !u.CreatedAt.IsZero() {
			joined = " joined " + u.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(a.out, "  [%s] %s <%s> role=%s%s\n", u.ID, u.FullName(), u.Email, u.Role.Normalize(), joined)
	}

	id, err := GetSimpleText(a.reader, "User id to edit/delete (empty to skip)", a.out)
	if err != nil || id == "" {
		return
	}

	var selected *models.User
	for i := range filtered {
		if filtered[i].ID == id {
			selected = &filtered[i]
			break
		}
	}
	if selected == nil {
		fmt.Fprintln(a.out, "No such user in the listing")
		return
	}

	action, err := GetSimpleText(a.reader, "Action: role / delete / back", a.out)
	if err != nil {
		return
	}

	switch action {
	case "role":
		role, err := GetSimpleText(a.reader, "New role [user/admin]", a.out)
		if err != nil {
			return
		}
		selected.Role = models.Role(role).Normalize()
		if err := a.users.Save(ctx, *selected); err != nil {
			a.reportError("Failed to save user", err)
			return
		}
		fmt.Fprintln(a.out, "User updated successfully")

	case "delete":
		ok, err := Confirm(a.reader, "Delete this user? This action cannot be undone.", a.out)
		if err != nil || !ok {
			return
		}
		if err := a.users.Delete(ctx, selected.ID); err != nil {
			a.reportError("Failed to delete user", err)
			return
		}
		fmt.Fprintln(a.out, "User deleted successfully")
	}
}

// manageMedicines offers the admin mutations after the listing.
func (a *App) manageMedicines(ctx context.Context) {
	action, err := GetSimpleText(a.reader, "Action: add / edit / delete / back", a.out)
	if err != nil {
		return
	}

	switch action {
	case "add":
		a.editMedicine(ctx, models.Medicine{})

	case "edit":
		id, err := GetSimpleText(a.reader, "Medicine id", a.out)
		if err != nil || id == "" {
			return
		}
		a.editMedicine(ctx, models.Medicine{ID: id})

	case "delete":
		id, err := GetSimpleText(a.reader, "Medicine id", a.out)
		if err != nil || id == "" {
			return
		}
		ok, err := Confirm(a.reader, "Delete this medicine?", a.out)
		if err != nil || !ok {
			return
		}
		if err := a.medicines.Delete(ctx, id); err != nil {
			a.reportError("Failed to delete medicine", err)
			return
		}
		fmt.Fprintln(a.out, "Medicine deleted")
	}
}

// editMedicine prompts for the form fields and saves. A kept id means
// update, an empty one create.
func (a *App) editMedicine(ctx context.Context, m models.Medicine) {
	var err error
	if m.Title, err = GetSimpleText(a.reader, "Title *", a.out); err != nil {
		return
	}
	if m.Usage, err = GetSimpleText(a.reader, "Usage *", a.out); err != nil {
		return
	}
	if m.Category, err = GetSimpleText(a.reader, "Category *", a.out); err != nil {
		return
	}
	if m.ImageURL, err = GetSimpleText(a.reader, "Image URL", a.out); err != nil {
		return
	}
	sideEffects, err := GetSimpleText(a.reader, "Side effects (comma separated)", a.out)
	if err != nil {
		return
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated)", a.out)
	if err != nil {
		return
	}
	m.SideEffect = services.SplitList(sideEffects)
	m.Tags = services.SplitList(tags)

	if err := a.medicines.Save(ctx, m); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			fmt.Fprintln(a.out, "Please fill in all required fields")
			return
		}
		a.reportError("Failed to save medicine", err)
		return
	}
	fmt.Fprintln(a.out, "Medicine saved")
}
