package office

// Office 365 OAuth and API defaults.
const (
	defaultClientID    = "b5f61636-8c63-4a7c-b4a3-6af6df33ad15"
	defaultOAuthBase   = "https://login.microsoftonline.com/common"
	defaultAuthPath    = "/oauth2/v2.0/authorize"
	defaultTokenPath   = "/oauth2/v2.0/token"
	defaultRedirectURI = "https://redirect.waffle"

	defaultAPIBase     = "https://outlook.office.com/api/v2.0"
	defaultMaxPageSize = 200
	defaultUserAgent   = "waffle/dev"
)

// defaultScopes are the OAuth scopes requested during authorization.
var defaultScopes = []string{
	"openid",
	"https://outlook.office.com/Calendars.read",
	"profile",
}

// OAuthConfig holds the OAuth endpoints and client credentials.
type OAuthConfig struct {
	// ClientID is the registered application ID.
	ClientID string
	// ClientSecret selects the authorization-code flow when set; the
	// implicit flow is used otherwise.
	ClientSecret string
	// BaseURL is the OAuth authority, e.g.
	// "https://login.microsoftonline.com/common".
	BaseURL string
	// AuthPath and TokenPath are appended to BaseURL.
	AuthPath  string
	TokenPath string
	// RedirectURI is the registered redirect target the auth surface is
	// watched for. It is never actually fetched.
	RedirectURI string
	// Scopes are space-joined into the authorization request.
	Scopes []string
}

// APIConfig holds the Outlook REST API settings.
type APIConfig struct {
	// BaseURL is the API root, e.g. "https://outlook.office.com/api/v2.0".
	BaseURL string
	// MaxPageSize caps the server-side page size via the
	// odata.maxpagesize preference.
	MaxPageSize int
	// UserAgent is sent on every API request.
	UserAgent string
}

// Config is the immutable connector configuration, injected at construction.
type Config struct {
	OAuth OAuthConfig
	API   APIConfig
}

// DefaultConfig returns the stock Office 365 configuration.
func DefaultConfig() *Config {
	return &Config{
		OAuth: OAuthConfig{
			ClientID:    defaultClientID,
			BaseURL:     defaultOAuthBase,
			AuthPath:    defaultAuthPath,
			TokenPath:   defaultTokenPath,
			RedirectURI: defaultRedirectURI,
			Scopes:      defaultScopes,
		},
		API: APIConfig{
			BaseURL:     defaultAPIBase,
			MaxPageSize: defaultMaxPageSize,
			UserAgent:   defaultUserAgent,
		},
	}
}

// AuthURL returns the full authorization endpoint URL.
func (c OAuthConfig) AuthURL() string {
	return c.BaseURL + c.AuthPath
}

// TokenURL returns the full token endpoint URL.
func (c OAuthConfig) TokenURL() string {
	return c.BaseURL + c.TokenPath
}
