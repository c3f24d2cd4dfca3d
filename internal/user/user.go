package user

import (
	"os"
	"os/user"
	"strings"
)

// fallbackSubject is used when no login name can be found
const fallbackSubject = "unknown"

// DefaultSubject returns the token subject used when none is given: the
// OS login name, then $USER, then "unknown". Never empty.
func DefaultSubject() string {
	if u, err := user.Current(); err == nil && strings.TrimSpace(u.Username) != "" {
		return subjectFrom(u.Username)
	}
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name
	}
	return fallbackSubject
}

// subjectFrom strips a Windows domain prefix
func subjectFrom(username string) string {
	if i := strings.LastIndex(username, `\`); i >= 0 {
		username = username[i+1:]
	}
	if username == "" {
		return fallbackSubject
	}
	return username
}
