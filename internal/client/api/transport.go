package api

import (
	"net/http"

	"github.com/google/uuid"
)

// TokenSource reports the bearer token to attach to outgoing requests. It is
// consulted on every request, so a token change between two calls is picked
// up immediately; nothing is captured at construction time.
type TokenSource interface {
	Token() string
}

// authTransport decorates a base transport with the portal's auth header.
// When the source has no token the request goes out without the header;
// authorization failures are the remote system's to report.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

// NewAuthTransport wraps base (http.DefaultTransport when nil) so that every
// request carries the current bearer token and a request id for correlation.
func NewAuthTransport(base http.RoundTripper, tokens TokenSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.tokens != nil {
		if tok := t.tokens.Token(); tok != "" {
			r.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	r.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(r)
}
