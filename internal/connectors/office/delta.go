package office

import "strings"

// deltaTokenLength is the exact length of a well-formed delta token. Links
// carrying a token of any other length are treated as having none, so a
// malformed or truncated link never poisons the stored cursor.
const deltaTokenLength = 32

const deltaTokenMarker = "deltatoken="

// ExtractDeltaToken locates the deltatoken parameter in a delta link and
// returns the token, or "" when the link carries no acceptable token.
func ExtractDeltaToken(deltaLink string) string {
	idx := strings.LastIndex(deltaLink, deltaTokenMarker)
	if idx < 0 {
		return ""
	}

	token := deltaLink[idx+len(deltaTokenMarker):]
	if !ValidDeltaToken(token) {
		return ""
	}
	return token
}

// ValidDeltaToken reports whether a stored token is usable on a request.
func ValidDeltaToken(token string) bool {
	return len(token) == deltaTokenLength
}
