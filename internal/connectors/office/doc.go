// Package office implements the Office 365 calendar connector: OAuth2
// authorization (interactive and silent), token exchange, delta-based event
// synchronisation against the Outlook REST API, and normalisation of raw
// provider items into canonical events.
//
// The package is organised around three pieces:
//
//   - Authenticator drives an authorization round-trip through an embeddable
//     browser surface and recovers the token bundle from the redirect URL.
//   - Engine runs the paginated calendar-view fetch as an explicit state
//     machine, capturing delta tokens and recovering from expired access
//     tokens (401) and invalidated sync state (410).
//   - Service composes the two into the AddAccount and CalendarView entry
//     points consumers call.
package office
