// Package validation provides input validation for registration and post
// content. Errors accumulate into string slices that render directly into
// templates; validation never aborts a request.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 10
	passwordMinLen = 12
	passwordMaxLen = 70

	// bcrypt reads at most 72 bytes of input, so a password inside the
	// character bounds can still be unhashable when it is multibyte.
	passwordMaxBytes = 72
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// stripPolicy removes every tag and attribute, leaving plain text.
	stripPolicy = bluemonday.StrictPolicy()
)

// SanitizeText strips all markup tags and attributes and trims surrounding
// whitespace. Applied to every user-supplied text field before persistence.
func SanitizeText(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// RegisterInput validates a registration request. The username is trimmed
// before checking. Duplicate-username detection is the caller's job since it
// needs the user store.
func RegisterInput(username, password string) (string, []string) {
	var errs []string

	username = strings.TrimSpace(username)

	if username == "" {
		errs = append(errs, "You must provide a username")
	}
	if username != "" && utf8.RuneCountInString(username) < usernameMinLen {
		errs = append(errs, "Username must be at least 3 characters")
	}
	if username != "" && utf8.RuneCountInString(username) > usernameMaxLen {
		errs = append(errs, "Username can not exceed 10 characters")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		errs = append(errs, "Username can only contain letters and numbers")
	}

	if password == "" {
		errs = append(errs, "You must provide a password")
	}
	switch {
	case password == "":
	case utf8.RuneCountInString(password) < passwordMinLen:
		errs = append(errs, "Password must be at least 12 characters")
	case utf8.RuneCountInString(password) > passwordMaxLen:
		errs = append(errs, "Password can not exceed 70 characters")
	case len(password) > passwordMaxBytes:
		errs = append(errs, "Password can not exceed 72 bytes")
	}

	return username, errs
}

// PostInput sanitizes a post's title and body and rejects either field that
// is empty after normalization. Returns the cleaned values together with the
// accumulated errors.
func PostInput(title, body string) (string, string, []string) {
	var errs []string

	title = SanitizeText(title)
	body = SanitizeText(body)

	if title == "" {
		errs = append(errs, "A title must be provided")
	}
	if body == "" {
		errs = append(errs, "Content must be provided")
	}

	return title, body, errs
}
