package cli

import (
	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/client/session"
)

// Page identifies one of the portal's screens.
type Page string

const (
	PageHome           Page = "home"
	PageLogin          Page = "login"
	PageSignup         Page = "signup"
	PageArticles       Page = "articles"
	PageMedicines      Page = "medicines"
	PageAbout          Page = "about"
	PageUserDashboard  Page = "user-dashboard"
	PageAdminDashboard Page = "admin-dashboard"
)

// Router holds the single current-page value and the render gating rules.
// It is not persisted; a fresh process starts on home unless the restored
// session fast-forwards it to a dashboard.
type Router struct {
	current  Page
	sessions *session.Manager
}

func NewRouter(sessions *session.Manager) *Router {
	return &Router{current: PageHome, sessions: sessions}
}

func (r *Router) Current() Page {
	return r.current
}

// SetCurrentPage is the only mutator.
func (r *Router) SetCurrentPage(p Page) {
	r.current = p
}

// ShowChrome reports whether the shared header/footer are rendered around
// the current page. The dashboards render full-bleed.
func (r *Router) ShowChrome() bool {
	return r.current != PageUserDashboard && r.current != PageAdminDashboard
}

// CanRender applies role gating: a dashboard renders only with a session
// user present, the admin dashboard only for an admin. When gating fails
// nothing is rendered and no redirect happens.
func (r *Router) CanRender(p Page) bool {
	switch p {
	case PageUserDashboard:
		return r.sessions.Current().User != nil
	case PageAdminDashboard:
		s := r.sessions.Current()
		return s.User != nil && s.User.Role.Normalize() == models.RoleAdmin
	default:
		return true
	}
}

// DashboardFor picks the landing page for a role.
func DashboardFor(role models.Role) Page {
	if role.Normalize() == models.RoleAdmin {
		return PageAdminDashboard
	}
	return PageUserDashboard
}
