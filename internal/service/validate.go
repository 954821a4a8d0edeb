package service

import (
	"net/mail"
	"strings"
	"unicode"
)

// Field length bounds for contact submissions.
const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxPhoneLen   = 32
	maxMessageLen = 4000
)

// minPasswordLen is the registration password floor.
const minPasswordLen = 8

// validEmail reports whether s is a plausible address: RFC 5322 parseable
// with a dotted domain. The dotted-domain requirement rejects bare hosts
// like "a@b" that ParseAddress accepts.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

// validPassword enforces the registration policy: at least 8 characters
// with at least one digit.
func validPassword(s string) bool {
	if len(s) < minPasswordLen {
		return false
	}
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
