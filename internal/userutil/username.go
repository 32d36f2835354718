package userutil

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

var invalidUsernameRune = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

var currentUserFn = user.Current

// SanitizeUsername normalizes username-like values used in lock names.
func SanitizeUsername(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return invalidUsernameRune.ReplaceAllString(value, "_")
}

// CurrentUsername returns the sanitized login name of the current user.
// USERNAME (Windows) and USER are checked before the account database.
func CurrentUsername() string {
	for _, key := range []string{"USERNAME", "USER"} {
		if name := strings.TrimSpace(os.Getenv(key)); name != "" {
			return SanitizeUsername(name)
		}
	}
	if current, err := currentUserFn(); err == nil {
		return SanitizeUsername(current.Username)
	}
	return SanitizeUsername("")
}
