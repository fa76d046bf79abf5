package office

import (
	"context"
	"fmt"
	"regexp"

	"github.com/raksonibs/waffle/internal/core/domain"
	"github.com/raksonibs/waffle/internal/core/ports/driven"
	"github.com/raksonibs/waffle/internal/logger"
)

// codeExchanger exchanges an authorization code for a token bundle.
// Implemented by TokenExchanger; a fake is substituted in tests.
type codeExchanger interface {
	Exchange(ctx context.Context, code string) (*domain.TokenBundle, error)
}

// Authenticator obtains a fresh token bundle by driving an OAuth round-trip
// through a browser surface, interactively or silently.
type Authenticator struct {
	cfg       OAuthConfig
	surfaces  driven.SurfaceOpener
	exchanger codeExchanger
}

// NewAuthenticator creates an authenticator using the given surface opener.
func NewAuthenticator(cfg OAuthConfig, surfaces driven.SurfaceOpener) *Authenticator {
	return &Authenticator{
		cfg:       cfg,
		surfaces:  surfaces,
		exchanger: NewTokenExchanger(cfg),
	}
}

// Authenticate runs one authorization round-trip. An empty existingUser means
// an interactive flow on a visible surface; a non-empty one requests silent
// reauthentication on a hidden surface for that login hint.
//
// Every navigation observed on the surface is scanned for a code, token or
// error parameter. The first qualifying URL resolves the flow; later
// navigations are never read. Closing the surface before a token is observed
// fails with ErrAuthCancelled.
func (a *Authenticator) Authenticate(ctx context.Context, existingUser string) (*domain.TokenBundle, error) {
	surface, err := a.surfaces.Open(ctx, existingUser == "")
	if err != nil {
		return nil, fmt.Errorf("office: open auth surface: %w", err)
	}
	defer surface.Close()

	authURL := BuildAuthURL(a.cfg, existingUser)
	logger.Debug("office: navigating auth surface (silent=%v)", existingUser != "")

	if err := surface.Navigate(authURL); err != nil {
		return nil, fmt.Errorf("office: navigate auth surface: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-surface.Closed():
			return nil, ErrAuthCancelled
		case u := <-surface.Navigations():
			cb, ok := extractCallback(u)
			if !ok {
				continue
			}
			surface.Close()
			return a.resolveCallback(ctx, cb)
		}
	}
}

// resolveCallback turns a captured redirect into a token bundle.
func (a *Authenticator) resolveCallback(ctx context.Context, cb callback) (*domain.TokenBundle, error) {
	switch {
	case cb.code != "":
		bundle, err := a.exchanger.Exchange(ctx, cb.code)
		if err != nil {
			return nil, err
		}
		bundle.Code = cb.code
		return bundle, nil
	case cb.accessToken != "":
		return &domain.TokenBundle{
			IDToken:     cb.idToken,
			AccessToken: cb.accessToken,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAuthDenied, cb.authErr)
	}
}

// Redirect URLs carry results in either the query or the fragment depending
// on the flow, so parameters are matched textually rather than parsed.
var (
	codePattern        = regexp.MustCompile(`code=([^&]*)`)
	accessTokenPattern = regexp.MustCompile(`access_token=([^&]*)`)
	idTokenPattern     = regexp.MustCompile(`id_token=([^&]*)`)
	authErrPattern     = regexp.MustCompile(`\?error=(.+)$`)
)

// callback holds the parameters recovered from a redirect URL.
type callback struct {
	code        string
	accessToken string
	idToken     string
	authErr     string
}

// extractCallback scans a navigation URL for authorization results. ok is
// true only for URLs that terminate the flow: those carrying a code, an
// access token, or an error.
func extractCallback(u string) (callback, bool) {
	var cb callback

	if m := codePattern.FindStringSubmatch(u); len(m) > 1 {
		cb.code = m[1]
	}
	if m := accessTokenPattern.FindStringSubmatch(u); len(m) > 1 {
		cb.accessToken = m[1]
	}
	if m := idTokenPattern.FindStringSubmatch(u); len(m) > 1 {
		cb.idToken = m[1]
	}
	if m := authErrPattern.FindStringSubmatch(u); len(m) > 1 {
		cb.authErr = m[1]
	}

	return cb, cb.code != "" || cb.accessToken != "" || cb.authErr != ""
}
