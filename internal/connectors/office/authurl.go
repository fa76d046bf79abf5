package office

import (
	"net/url"
	"strings"
)

// Static anti-forgery values for the implicit flow. The redirect is captured
// inside an app-owned surface, so a fixed state is acceptable here.
const (
	implicitState = "12345"
	implicitNonce = "678910"

	// domainHint tells the authority which account realm to try during
	// silent reauthentication. Only correct for Office 365 tenants.
	domainHint = "organizations"
)

// BuildAuthURL constructs the provider authorization URL. When a client
// secret is configured the authorization-code flow is requested; otherwise
// the implicit flow with a fragment response. Passing a non-empty
// existingUser requests silent reauthentication: the provider is instructed
// to skip interactive consent for that login hint.
func BuildAuthURL(cfg OAuthConfig, existingUser string) string {
	params := url.Values{
		"redirect_uri": {cfg.RedirectURI},
		"scope":        {strings.Join(cfg.Scopes, " ")},
		"client_id":    {cfg.ClientID},
	}

	if cfg.ClientSecret != "" {
		params.Set("response_type", "code")
	} else {
		params.Set("response_type", "id_token token")
		params.Set("response_mode", "fragment")
		params.Set("state", implicitState)
		params.Set("nonce", implicitNonce)
	}

	if existingUser != "" {
		params.Set("prompt", "none")
		params.Set("login_hint", existingUser)
		params.Set("domain_hint", domainHint)
	}

	return cfg.AuthURL() + "?" + params.Encode()
}
