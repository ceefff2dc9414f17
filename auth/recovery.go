package auth

import (
	"strings"
	"unicode/utf8"
)

// RecoveryHint is shown once the recover form's first step passes.
type RecoveryHint struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// VerifyContact checks a recovery request before a new password is chosen.
// Unlike ResetPassword it is forgiving: the email compares case-insensitively
// and the phone compares on digits only.
func (c *CredentialStore) VerifyContact(username, emailOrPhone string) (RecoveryHint, bool, error) {
	rec, ok, err := c.Admin()
	if err != nil || !ok {
		return RecoveryHint{}, false, err
	}
	if rec.Username != username {
		return RecoveryHint{}, false, nil
	}

	emailMatch := strings.ToLower(rec.Email) == strings.ToLower(emailOrPhone)
	digits := DigitsOnly(emailOrPhone)
	phoneMatch := digits != "" && DigitsOnly(rec.Phone) == digits
	if !emailMatch && !phoneMatch {
		return RecoveryHint{}, false, nil
	}
	return RecoveryHint{Email: MaskEmail(rec.Email), Phone: MaskPhone(rec.Phone)}, true, nil
}

// MaskEmail keeps the first and last character of the local part:
// "owner@example.com" becomes "o***r@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	n := utf8.RuneCountInString(local)
	if n <= 2 {
		return email
	}
	first, _ := utf8.DecodeRuneInString(local)
	last, _ := utf8.DecodeLastRuneInString(local)
	return string(first) + strings.Repeat("*", n-2) + string(last) + "@" + domain
}

// MaskPhone keeps the last four digits: "***-***-4567".
func MaskPhone(phone string) string {
	digits := DigitsOnly(phone)
	if len(digits) <= 4 {
		return phone
	}
	return "***-***-" + digits[len(digits)-4:]
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
