package service

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Skotchmaster/nba_api/pkg/hash"
)

const (
	minPasswordLen = 6
	minUsernameLen = 3
	maxUsernameLen = 50
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return validationf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return validationf("username may contain only letters, digits and underscores")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return validationf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > hash.MaxPasswordBytes {
		return validationf("password must be at most %d bytes", hash.MaxPasswordBytes)
	}
	return nil
}

// requireText trims s and checks it is non-empty and at most max runes long.
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", validationf("%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", validationf("%s must be at most %d characters", field, max)
	}
	return s, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, validationf("birth_date must be YYYY-MM-DD or RFC3339")
	}
	return d.UTC(), nil
}
