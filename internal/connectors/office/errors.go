package office

import (
	"errors"
	"net/http"
)

// Error taxonomy for authorization and sync runs.
var (
	// ErrAuthCancelled indicates the user closed the authorization window
	// before a token was observed.
	ErrAuthCancelled = errors.New("office: authentication cancelled")

	// ErrAuthDenied indicates the provider redirected back with an error
	// parameter instead of a token.
	ErrAuthDenied = errors.New("office: authorization denied by provider")

	// ErrTokenExchange indicates the code-for-token exchange was rejected.
	ErrTokenExchange = errors.New("office: token exchange failed")

	// ErrReauthFailed indicates silent reauthentication could not produce
	// a usable token.
	ErrReauthFailed = errors.New("office: silent reauthentication failed")

	// ErrSyncAborted indicates an unclassified transport or provider error
	// terminated a sync run.
	ErrSyncAborted = errors.New("office: sync aborted")

	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("office: unauthorised")

	// ErrSyncStateGone indicates the provider invalidated the sync state.
	// A full resync is required when this error occurs.
	ErrSyncStateGone = errors.New("office: sync state gone, full resync required")

	// ErrRateLimited indicates the request was throttled by the provider.
	ErrRateLimited = errors.New("office: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("office: bad request")

	// ErrServerError indicates a server-side provider error.
	ErrServerError = errors.New("office: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusGone:
		return ErrSyncStateGone
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsUnauthorised checks if the status code indicates an expired or invalid
// access token.
func IsUnauthorised(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsSyncStateGone checks if the status code indicates invalidated sync state.
// The Outlook API returns 410 Gone when the delta token can no longer be
// honoured.
func IsSyncStateGone(statusCode int) bool {
	return statusCode == http.StatusGone
}

// IsRateLimited checks if the status code indicates throttling.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
