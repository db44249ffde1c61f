// Package api implements the portal's REST API client. Response bodies are
// decoded into tagged results right at the network boundary so the rest of
// the application never re-inspects raw response text.
package api

import (
	"context"

	"github.com/mkalinin/healthportal/internal/client/models"
)

// LoginOutcome discriminates the result of a login-shaped call.
type LoginOutcome int

const (
	// OutcomeOTPRequired: the server accepted the credentials and emailed a
	// one-time code; the flow moves to OTP entry.
	OutcomeOTPRequired LoginOutcome = iota
	// OutcomeRejected: the server answered but did not start an OTP exchange.
	OutcomeRejected
)

// LoginResult is the decoded outcome of Login and GoogleSignIn. Message
// carries the server's text for display and may be empty.
type LoginResult struct {
	Outcome LoginOutcome
	Message string
}

// VerifyResult is the decoded outcome of VerifyLoginOTP. Authenticated is
// true only when the server returned a token; Token and User are then set.
type VerifyResult struct {
	Authenticated bool
	Message       string
	Token         string
	User          *models.User
}

// SignupRequest carries the profile fields for account creation.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Password  string `json:"password"`
}

// Client is the full surface of the portal REST API used by the application.
// Methods returning an error distinguish transport failures (wrapping
// ErrUnavailable) from rejections decoded as *Error.
type Client interface {
	Login(ctx context.Context, email, password string, isAdmin bool) (LoginResult, error)
	VerifyLoginOTP(ctx context.Context, email, otp string) (VerifyResult, error)
	GoogleSignIn(ctx context.Context, email, name string) (LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	Signup(ctx context.Context, req SignupRequest) (string, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error

	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	ListCommonMedicines(ctx context.Context, category string) ([]models.Medicine, error)
	CreateMedicine(ctx context.Context, m models.Medicine) error
	UpdateMedicine(ctx context.Context, m models.Medicine) error
	DeleteMedicine(ctx context.Context, id string) error

	ListArticles(ctx context.Context) ([]models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}
