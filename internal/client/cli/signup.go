package cli

import (
	"context"
	"fmt"

	"github.com/mkalinin/healthportal/internal/client/api"
)

// signupPage collects the profile fields and posts the account request.
// The server answers with a message either way; errors keep the user on the
// page for another attempt.
func (a *App) signupPage(ctx context.Context) {
	fmt.Fprintln(a.out, "Create your account")

	var req api.SignupRequest
	var err error

	if req.FirstName, err = GetSimpleText(a.reader, "First name", a.out); err != nil {
		return
	}
	if req.LastName, err = GetSimpleText(a.reader, "Last name", a.out); err != nil {
		return
	}
	if req.Email, err = GetSimpleText(a.reader, "Email address", a.out); err != nil {
		return
	}
	if req.Phone, err = GetSimpleText(a.reader, "Phone", a.out); err != nil {
		return
	}
	if req.Gender, err = GetSimpleText(a.reader, "Gender", a.out); err != nil {
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return
	}
	req.Password = string(password)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		fmt.Fprintln(a.out, "Name, email and password are required")
		return
	}

	msg, err := a.api.Signup(ctx, req)
	if err != nil {
		fmt.Fprintln(a.out, "Signup failed:", err)
		return
	}
	if msg == "" {
		msg = "Account created. You can log in now."
	}
	fmt.Fprintln(a.out, msg)
	a.router.SetCurrentPage(PageLogin)
	a.render(ctx)
}
