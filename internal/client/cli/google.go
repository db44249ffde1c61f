package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/mkalinin/healthportal/internal/client/auth"
)

// promptProvider stands in for the browser's Google popup: it asks for the
// Google account profile to forward to the backend. An empty email counts
// as cancellation.
type promptProvider struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ auth.Provider = (*promptProvider)(nil)

func (p *promptProvider) SignIn(ctx context.Context) (auth.Profile, error) {
	email, err := GetSimpleText(p.reader, "Google account email", p.out)
	if err != nil {
		return auth.Profile{}, err
	}
	if email == "" {
		return auth.Profile{}, auth.ErrProviderCancelled
	}
	name, err := GetSimpleText(p.reader, "Display name", p.out)
	if err != nil {
		return auth.Profile{}, err
	}
	return auth.Profile{Email: email, Name: name}, nil
}
