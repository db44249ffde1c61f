// Package auth drives the portal's two-step login: credentials (or a
// third-party profile) buy an emailed one-time code, and the code buys a
// bearer token plus the user record.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mkalinin/healthportal/internal/client/api"
	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/client/session"
	"github.com/mkalinin/healthportal/internal/logging"
)

// Step names the flow's position.
type Step string

const (
	StepCredentials Step = "credentials"
	StepOTPPending  Step = "otp-pending"
)

// StatusKind classifies a status message for presentation.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the last user-visible message produced by the flow.
type Status struct {
	Kind StatusKind
	Text string
}

// Generic fallbacks used when the server supplies no text of its own.
const (
	msgLoginFailed    = "Login failed"
	msgInvalidOTP     = "Invalid OTP"
	msgLoginOK        = "Login successful!"
	msgNetworkError   = "Network error. Please try again."
	msgGoogleFailed   = "Google sign-in failed"
	msgResetFallback  = "If your email exists, you'll get a reset link shortly."
	msgMissingFields  = "Email and password are required"
	msgIncompleteCode = "Enter the 6-digit code"
)

// otpLength is fixed by the portal backend.
const otpLength = 6

// defaultCompletionDelay keeps the success message visible before the
// completion callback navigates away.
const defaultCompletionDelay = 800 * time.Millisecond

// ErrProviderCancelled is returned by a Provider when the user abandons the
// third-party sign-in.
var ErrProviderCancelled = errors.New("sign-in cancelled")

// Profile is the minimal identity a third-party provider hands back.
type Profile struct {
	Email string
	Name  string
}

// Provider performs the third-party sign-in handoff and yields the profile
// to forward to the backend.
type Provider interface {
	SignIn(ctx context.Context) (Profile, error)
}

// CompletionFunc receives the fresh token and the normalized role once the
// flow reaches the authenticated state.
type CompletionFunc func(token string, role models.Role)

// API is the slice of the portal client the flow needs.
type API interface {
	Login(ctx context.Context, email, password string, isAdmin bool) (api.LoginResult, error)
	VerifyLoginOTP(ctx context.Context, email, otp string) (api.VerifyResult, error)
	GoogleSignIn(ctx context.Context, email, name string) (api.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// Flow is one login attempt. It is transient: discarded on success or when
// the user navigates away, never persisted. Side effects are limited to
// network calls, session persistence on the verify transition, and status
// text; nothing is retried automatically.
type Flow struct {
	api        API
	sessions   *session.Manager
	log        logging.Logger
	onComplete CompletionFunc

	delay time.Duration
	sleep func(time.Duration)

	step    Step
	status  Status
	email   string
	isAdmin bool
	otp     string
}

// Option adjusts flow construction.
type Option func(*Flow)

// WithCompletionDelay overrides the pause between the success status and the
// completion callback.
func WithCompletionDelay(d time.Duration) Option {
	return func(f *Flow) { f.delay = d }
}

func NewFlow(client API, sessions *session.Manager, onComplete CompletionFunc, log logging.Logger, opts ...Option) *Flow {
	f := &Flow{
		api:        client,
		sessions:   sessions,
		log:        log,
		onComplete: onComplete,
		delay:      defaultCompletionDelay,
		sleep:      time.Sleep,
		step:       StepCredentials,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Step() Step       { return f.step }
func (f *Flow) Status() Status   { return f.status }
func (f *Flow) Email() string    { return f.email }
func (f *Flow) OTP() string      { return f.otp }
func (f *Flow) IsAdmin() bool    { return f.isAdmin }
func (f *Flow) SetAdmin(on bool) { f.isAdmin = on }

// SubmitCredentials runs the first step. The flow moves to OTP entry only
// when the server both answers 2xx and indicates a code was issued; every
// other outcome leaves the flow on the credentials step for re-entry.
func (f *Flow) SubmitCredentials(ctx context.Context, email, password string) {
	if email == "" || password == "" {
		f.status = Status{Kind: StatusError, Text: msgMissingFields}
		return
	}

	res, err := f.api.Login(ctx, email, password, f.isAdmin)
	if err != nil {
		f.log.Warn(ctx, "login request failed", "error", err)
		f.status = Status{Kind: StatusError, Text: msgNetworkError}
		return
	}
	if res.Outcome != api.OutcomeOTPRequired {
		f.status = Status{Kind: StatusError, Text: fallback(res.Message, msgLoginFailed)}
		return
	}

	f.email = email
	f.otp = ""
	f.step = StepOTPPending
	f.status = Status{Kind: StatusInfo, Text: res.Message}
}

// TypeOTP applies the input constraint as typed: non-digits are stripped and
// the value is truncated to six digits. The stored value is returned.
func (f *Flow) TypeOTP(input string) string {
	digits := make([]rune, 0, otpLength)
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		digits = append(digits, r)
		if len(digits) == otpLength {
			break
		}
	}
	f.otp = string(digits)
	return f.otp
}

// SubmitOTP runs the verify transition. On success the session is persisted
// first, then after the display delay the completion callback fires with the
// token and normalized role. On failure the flow stays on OTP entry.
func (f *Flow) SubmitOTP(ctx context.Context) {
	if f.step != StepOTPPending {
		return
	}
	if len(f.otp) != otpLength {
		f.status = Status{Kind: StatusError, Text: msgIncompleteCode}
		return
	}

	res, err := f.api.VerifyLoginOTP(ctx, f.email, f.otp)
	if err != nil {
		f.log.Warn(ctx, "otp verification request failed", "error", err)
		f.status = Status{Kind: StatusError, Text: msgNetworkError}
		return
	}
	if !res.Authenticated {
		f.status = Status{Kind: StatusError, Text: fallback(res.Message, msgInvalidOTP)}
		return
	}

	// Persist before announcing success so a restart right here keeps the
	// session.
	if err := f.sessions.SetToken(ctx, res.Token); err != nil {
		f.log.Error(ctx, "failed to persist token", "error", err)
	}
	if err := f.sessions.SetUser(ctx, res.User); err != nil {
		f.log.Error(ctx, "failed to persist user", "error", err)
	}

	f.status = Status{Kind: StatusSuccess, Text: msgLoginOK}

	role := models.Role("").Normalize()
	if res.User != nil {
		role = res.User.Role.Normalize()
	}

	f.sleep(f.delay)
	if f.onComplete != nil {
		f.onComplete(res.Token, role)
	}
}

// Back returns from OTP entry to the credentials step, discarding the typed
// code and any status but keeping the entered email.
func (f *Flow) Back() {
	if f.step != StepOTPPending {
		return
	}
	f.step = StepCredentials
	f.otp = ""
	f.status = Status{}
}

// GoogleSignIn runs the third-party branch: fetch a minimal profile from the
// provider, forward it to the backend, and on an issued code enter OTP entry
// with the provider's email pre-filled. No password is retained.
func (f *Flow) GoogleSignIn(ctx context.Context, provider Provider) {
	profile, err := provider.SignIn(ctx)
	if err != nil {
		f.log.Warn(ctx, "google sign-in aborted", "error", err)
		f.status = Status{Kind: StatusError, Text: msgGoogleFailed}
		return
	}

	res, err := f.api.GoogleSignIn(ctx, profile.Email, profile.Name)
	if err != nil {
		f.log.Warn(ctx, "google sign-in request failed", "error", err)
		f.status = Status{Kind: StatusError, Text: msgNetworkError}
		return
	}
	if res.Outcome != api.OutcomeOTPRequired {
		f.status = Status{Kind: StatusError, Text: fallback(res.Message, msgGoogleFailed)}
		return
	}

	f.email = profile.Email
	f.otp = ""
	f.step = StepOTPPending
	f.status = Status{Kind: StatusInfo, Text: res.Message}
}

// ForgotPassword requests a reset email and surfaces whatever the server
// says. It never changes the step and always resolves to a status.
func (f *Flow) ForgotPassword(ctx context.Context, email string) {
	if email == "" {
		return
	}

	msg, err := f.api.ForgotPassword(ctx, email)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			f.status = Status{Kind: StatusError, Text: fallback(apiErr.Message, msgResetFallback)}
			return
		}
		f.status = Status{Kind: StatusError, Text: msgNetworkError}
		return
	}
	f.status = Status{Kind: StatusSuccess, Text: fallback(msg, msgResetFallback)}
}

func fallback(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
