package cli

import (
	"context"
	"fmt"

	"github.com/mkalinin/healthportal/internal/client/services"
)

func (a *App) homePage() {
	fmt.Fprintln(a.out, "Your trusted partner in healthcare information and patient empowerment.")
	fmt.Fprintln(a.out, "Browse 'articles' and 'medicines', or 'login' to manage your account.")
}

func (a *App) aboutPage() {
	fmt.Fprintln(a.out, "About Digital Healthcare Assistant")
	fmt.Fprintln(a.out, "A healthcare information portal: articles, a medicine catalog and")
	fmt.Fprintln(a.out, "personal dashboards for patients and administrators.")
}

// articlesPage lists articles with an optional search; admins may delete.
func (a *App) articlesPage(ctx context.Context) {
	list, err := a.articles.List(ctx)
	if err != nil {
		a.reportError("Failed to load articles", err)
		return
	}

	term, err := GetSimpleText(a.reader, "Search by title or category (empty for all)", a.out)
	if err != nil {
		return
	}
	filtered := services.FilterArticles(list, term)

	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No articles found")
		return
	}
	for _, article := range filtered {
		fmt.Fprintf(a.out, "  [%s] %s (%s)\n", article.ID, article.Title, article.Category)
	}

	if !a.isAdmin() {
		return
	}
	id, err := GetSimpleText(a.reader, "Article id to delete (empty to skip)", a.out)
	if err != nil || id == "" {
		return
	}
	ok, err := Confirm(a.reader, "Delete this article? This cannot be undone.", a.out)
	if err != nil || !ok {
		return
	}
	if err := a.articles.Delete(ctx, id); err != nil {
		a.reportError("Failed to delete article", err)
		return
	}
	fmt.Fprintln(a.out, "Article deleted")
}

// medicinesPage lists the catalog; admins get the management listing and
// may add, edit or delete records.
func (a *App) medicinesPage(ctx context.Context) {
	admin := a.isAdmin()

	category := ""
	if !admin {
		c, err := GetSimpleText(a.reader, "Filter by category (empty for all)", a.out)
		if err != nil {
			return
		}
		category = c
	}

	list, err := a.medicines.Browse(ctx, admin, category)
	if err != nil {
		a.reportError("Failed to load medicines", err)
		return
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No medicines found")
	}
	for _, m := range list {
		fmt.Fprintf(a.out, "  [%s] %s - %s (%s)\n", m.ID, m.Title, m.Usage, m.Category)
		if len(m.SideEffect) > 0 {
			fmt.Fprintf(a.out, "      side effects: %v\n", m.SideEffect)
		}
	}

	if admin {
		a.manageMedicines(ctx)
	}
}

func (a *App) userDashboard() {
	user := a.sessions.Current().User

	fmt.Fprintln(a.out, "==== My Dashboard ====")
	fmt.Fprintf(a.out, "Name:   %s\n", user.FullName())
	fmt.Fprintf(a.out, "Email:  %s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(a.out, "Phone:  %s\n", user.Phone)
	}
	if user.Gender != "" {
		fmt.Fprintf(a.out, "Gender: %s\n", user.Gender)
	}
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(a.out, "Commands: home, articles, medicines, logout")
}
