// Package redact provides utilities for scrubbing sensitive information from
// error strings before they are logged. Database connection strings, bearer
// tokens, passwords, and email addresses must never reach the log stream
// verbatim.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`)

	// password=..., pwd: ... style fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)[=:\s]+[^\s'"&]{3,}`)

	// Three-part base64url JWT tokens
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String scrubs sensitive fragments from s.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, CredentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1="+CredentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, TokenPlaceholder)
	s = emailRegex.ReplaceAllString(s, EmailPlaceholder)
	return s
}

// Error scrubs an error's message. Returns the empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
