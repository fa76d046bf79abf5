package domain

import "time"

// StrategyType identifies the calendar provider an account belongs to.
type StrategyType string

const (
	// StrategyOffice is for Office 365 / Outlook.com calendars.
	StrategyOffice StrategyType = "office"
)

// Account is a connected calendar account. The record itself is owned by the
// persistence layer; sync code only reads and replaces the OAuth bundle and
// the stored delta token.
type Account struct {
	// ID is a stable unique identifier for the record.
	ID string
	// Name is the human-readable account label, e.g. "Office 365".
	Name string
	// Username is the account email address. Also the lookup key.
	Username string
	// Strategy identifies the provider this account syncs against.
	Strategy StrategyType
	// OAuth is the current token bundle. Replaced, never mutated, on
	// reauthentication.
	OAuth *TokenBundle
	// DeltaToken is the provider-issued sync checkpoint. Empty when no
	// valid checkpoint exists and the next sync must fetch everything.
	DeltaToken string
	// CreatedAt and UpdatedAt track record lifecycle.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenBundle holds the tokens returned by an authorization round-trip.
// A bundle is immutable once issued; reauthentication produces a new one.
type TokenBundle struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	// Code is the authorization code the bundle was exchanged from.
	// Empty for implicit-flow bundles.
	Code      string `json:"code,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}
