// Package redact strips credentials and other sensitive values from error
// text before it is logged or echoed back to a client. The HTTP layer runs
// every logged error through Error so that bearer tokens, password digests,
// connection strings and user emails never reach the log stream verbatim.
package redact

import "regexp"

// Placeholders substituted for each class of sensitive value.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_JWT]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Order matters: bearer headers and connection strings must be replaced
// before the looser email and secret patterns get a chance to match inside them.
var rules = []rule{
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`), "Bearer " + TokenPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|sqlite|file)://[^@\s]+@`), "$1://" + CredentialPlaceholder + "@"},
	{regexp.MustCompile(`(?i)(password|passwd|pwd|password_hash)(\s*[=:]\s*['"]?)[^'"&\s,]+`), "$1$2" + CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(secret|api[_-]?key|token)(\s*[=:]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`), "$1$2" + Placeholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[^;]*?\b(FROM|INTO|SET)\b[^;]*`), SQLPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
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
