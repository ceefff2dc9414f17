package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Problem keys double as i18n message keys.
const (
	ProblemUsernameTooShort = "UsernameTooShort"
	ProblemPasswordTooShort = "PasswordTooShort"
	ProblemPasswordMismatch = "PasswordMismatch"
	ProblemInvalidEmail     = "InvalidEmail"
	ProblemInvalidPhone     = "InvalidPhone"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	minPhoneLen    = 10
)

// ValidationError lists every problem found in a form.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid admin details: " + strings.Join(e.Problems, ", ")
}

// ValidateSetup checks the first-run form before Create.
func ValidateSetup(username, password, confirm, email, phone string) error {
	var problems []string
	if isBlank(username) || utf8.RuneCountInString(username) < minUsernameLen {
		problems = append(problems, ProblemUsernameTooShort)
	}
	problems = append(problems, passwordProblems(password, confirm)...)
	problems = append(problems, contactProblems(email, phone)...)
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateContact checks the recovery email and phone on their own, as the
// admin panel's info form does.
func ValidateContact(email, phone string) error {
	if problems := contactProblems(email, phone); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func contactProblems(email, phone string) []string {
	var problems []string
	if !strings.Contains(email, "@") {
		problems = append(problems, ProblemInvalidEmail)
	}
	if utf8.RuneCountInString(phone) < minPhoneLen {
		problems = append(problems, ProblemInvalidPhone)
	}
	return problems
}

// ValidatePassword checks a new password and its confirmation.
func ValidatePassword(password, confirm string) error {
	if problems := passwordProblems(password, confirm); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func passwordProblems(password, confirm string) []string {
	var problems []string
	if utf8.RuneCountInString(password) < minPasswordLen {
		problems = append(problems, ProblemPasswordTooShort)
	}
	if password != confirm {
		problems = append(problems, ProblemPasswordMismatch)
	}
	return problems
}

// isBlank reports whether s holds only whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
