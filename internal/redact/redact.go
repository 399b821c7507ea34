// Package redact strips sensitive values from strings before they reach
// logs or error responses. The backend talks to a database and two paid
// APIs, so connection strings, vendor API keys, and session tokens are
// the values most likely to leak through wrapped errors.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedKey        = "[REDACTED_KEY]"
	RedactedToken      = "[REDACTED_TOKEN]"
	RedactedEmail      = "[REDACTED_EMAIL]"
)

var (
	// Connection strings with embedded credentials
	connStringRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql|redis)://[^@\s]+@`)

	// Anthropic-style and generic vendor API keys
	vendorKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}\b`)
	apiKeyRegex    = regexp.MustCompile(`(?i)(api[_-]?key|xi-api-key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Three-part base64url session tokens
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// Bcrypt hashes, which surface in user-row errors
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)

	// Email addresses, the login identifier
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{connStringRegex, RedactedCredential},
		{vendorKeyRegex, RedactedKey},
		{apiKeyRegex, RedactedKey},
		{jwtRegex, RedactedToken},
		{bcryptRegex, RedactedCredential},
		{emailRegex, RedactedEmail},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
