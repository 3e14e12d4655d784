package security

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

const passwordSpecialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~`"

// ValidatePassword enforces the platform password policy: 8 to 16
// characters with at least one uppercase letter and one special
// character.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return fmt.Errorf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen)
	}

	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !strings.ContainsAny(password, passwordSpecialChars) {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}
