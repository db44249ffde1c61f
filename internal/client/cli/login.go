package cli

import (
	"context"
	"fmt"

	"github.com/mkalinin/healthportal/internal/client/auth"
	"github.com/mkalinin/healthportal/internal/client/models"
)

// loginPage drives one auth.Flow interactively. The flow is discarded when
// the user leaves the page, whether or not it completed.
func (a *App) loginPage(ctx context.Context) {
	flow := auth.NewFlow(a.api, a.sessions, func(token string, role models.Role) {
		a.router.SetCurrentPage(DashboardFor(role))
	}, a.log)

	fmt.Fprintln(a.out, "Welcome back! Sign in to your healthcare portal")

	mode, err := GetSimpleText(a.reader, "Login as [user/admin] (default user)", a.out)
	if err != nil {
		return
	}
	flow.SetAdmin(mode == "admin")

	for a.router.Current() == PageLogin {
		switch flow.Step() {
		case auth.StepCredentials:
			if !a.credentialsStep(ctx, flow) {
				return
			}
		case auth.StepOTPPending:
			if !a.otpStep(ctx, flow) {
				return
			}
		}
		a.printStatus(flow.Status())
	}

	// Completion callback moved the router to a dashboard.
	a.render(ctx)
}

// credentialsStep runs one round of the first step. Returns false when the
// user leaves the page.
func (a *App) credentialsStep(ctx context.Context, flow *auth.Flow) bool {
	choices := "Choose: signin / google / forgot / back"
	if flow.IsAdmin() {
		// Google sign-in is offered for user accounts only.
		choices = "Choose: signin / forgot / back"
	}

	choice, err := GetSimpleText(a.reader, choices, a.out)
	if err != nil {
		return false
	}

	switch choice {
	case "google":
		if flow.IsAdmin() {
			fmt.Fprintln(a.out, "Unknown choice:", choice)
			return true
		}
		flow.GoogleSignIn(ctx, &promptProvider{reader: a.reader, out: a.out})

	case "forgot":
		email, err := GetSimpleText(a.reader, "Enter your email to receive a reset link", a.out)
		if err != nil {
			return false
		}
		flow.ForgotPassword(ctx, email)

	case "back":
		a.router.SetCurrentPage(PageHome)
		return false

	default:
		email, err := GetSimpleText(a.reader, "Email address", a.out)
		if err != nil {
			return false
		}
		password, err := GetPassword(a.out)
		if err != nil {
			return false
		}
		flow.SubmitCredentials(ctx, email, string(password))
	}
	return true
}

// otpStep runs one round of OTP entry. Returns false when the user leaves
// the page.
func (a *App) otpStep(ctx context.Context, flow *auth.Flow) bool {
	prompt := fmt.Sprintf("Enter OTP sent to %s (or 'back')", flow.Email())
	input, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return false
	}
	if input == "back" {
		flow.Back()
		return true
	}

	flow.TypeOTP(input)
	flow.SubmitOTP(ctx)
	return true
}

func (a *App) printStatus(s auth.Status) {
	if s.Kind == auth.StatusNone || s.Text == "" {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", s.Kind, s.Text)
}
