// Package cli is the terminal front end of the health portal client: a REPL
// whose commands switch between the portal's pages.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mkalinin/healthportal/internal/client/api"
	"github.com/mkalinin/healthportal/internal/client/config"
	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/client/services"
	"github.com/mkalinin/healthportal/internal/client/session"
	"github.com/mkalinin/healthportal/internal/common"
	"github.com/mkalinin/healthportal/internal/logging"
)

type App struct {
	config   *config.Config
	api      api.Client
	sessions *session.Manager
	router   *Router

	medicines *services.MedicineService
	articles  *services.ArticleService
	users     *services.UserAdminService

	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sessions := session.NewManager(session.NewSQLiteStore(db), log)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, sessions, c.RequestTimeout, log)

	app := &App{
		config:    c,
		api:       apiClient,
		sessions:  sessions,
		router:    NewRouter(sessions),
		medicines: services.NewMedicineService(apiClient),
		articles:  services.NewArticleService(apiClient),
		users:     services.NewUserAdminService(apiClient),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	// A valid persisted session lands straight on the role dashboard.
	if s, ok := sessions.Restore(ctx); ok {
		app.router.SetCurrentPage(DashboardFor(s.User.Role))
		log.Info(ctx, "session restored", "email", s.User.Email, "role", s.User.Role.Normalize())
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().LoggedIn()
}

func (a *App) isAdmin() bool {
	s := a.sessions.Current()
	return s.User != nil && s.User.Role.Normalize() == models.RoleAdmin
}

func (a *App) getStatus() string {
	s := a.sessions.Current()
	if s.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.User.Email, s.User.Role.Normalize())
}

// Run starts the REPL. Each command selects a page; rendering happens
// through the router so chrome and role gating stay in one place.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Digital Healthcare Assistant (type 'help' for commands)")
	a.render(ctx)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "hp %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: home, articles, medicines, about, dashboard, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: home, articles, medicines, about, login, signup, exit")
			}

		case "home":
			a.goTo(ctx, PageHome)
		case "articles":
			a.goTo(ctx, PageArticles)
		case "medicines":
			a.goTo(ctx, PageMedicines)
		case "about":
			a.goTo(ctx, PageAbout)
		case "login":
			a.goTo(ctx, PageLogin)
		case "signup":
			a.goTo(ctx, PageSignup)

		case "dashboard":
			if s := a.sessions.Current(); s.User != nil {
				a.goTo(ctx, DashboardFor(s.User.Role))
			} else {
				fmt.Fprintln(a.out, "Please log in first")
			}

		case "logout":
			if err := a.sessions.Logout(ctx); err != nil {
				a.log.Error(ctx, "logout failed", "error", err)
			}
			a.goTo(ctx, PageHome)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) goTo(ctx context.Context, p Page) {
	a.router.SetCurrentPage(p)
	a.render(ctx)
}

// render draws the current page. Pages that fail role gating draw nothing;
// there is no automatic redirect.
func (a *App) render(ctx context.Context) {
	p := a.router.Current()
	if !a.router.CanRender(p) {
		return
	}

	if a.router.ShowChrome() {
		a.header()
	}

	switch p {
	case PageHome:
		a.homePage()
	case PageLogin:
		a.loginPage(ctx)
	case PageSignup:
		a.signupPage(ctx)
	case PageArticles:
		a.articlesPage(ctx)
	case PageMedicines:
		a.medicinesPage(ctx)
	case PageAbout:
		a.aboutPage()
	case PageUserDashboard:
		a.userDashboard()
	case PageAdminDashboard:
		a.adminDashboard(ctx)
	}

	if a.router.ShowChrome() {
		a.footer()
	}
}

// reportError prints a one-line failure message, collapsing well-known
// failures to fixed texts so raw status codes stay out of the UI.
func (a *App) reportError(action string, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Fprintln(a.out, action+": not authorized, please log in again")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, action+": not found")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, action+": server unavailable, please try again")
	default:
		fmt.Fprintf(a.out, "%s: %v\n", action, err)
	}
}

func (a *App) header() {
	fmt.Fprintln(a.out, "==== Digital Healthcare Assistant ====")
	fmt.Fprintln(a.out, "  home | articles | medicines | about")
}

func (a *App) footer() {
	fmt.Fprintln(a.out, "--------------------------------------")
}
