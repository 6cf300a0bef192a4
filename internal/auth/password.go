package auth

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// BurnPasswordCheck runs a bcrypt comparison against a throwaway hash so a
// login for an unknown user costs as much as one for a known user.
func BurnPasswordCheck(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("not-a-real-password")
	})
	_ = VerifyPassword(dummyHash, password)
}

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwertyuiop": {}, "qwerty123": {}, "iloveyou": {}, "11111111": {},
	"abc12345": {}, "letmein1": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "trustno1": {}, "passw0rd": {}, "superman": {},
}

// CheckPassword returns the reasons a new password is rejected, or nil.
func CheckPassword(password, username string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		problems = append(problems, "This password is too common.")
	}

	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		problems = append(problems, "This password is entirely numeric.")
	}

	if name := strings.ToLower(username); name != "" && (lower == name || (len(name) >= 3 && strings.Contains(lower, name))) {
		problems = append(problems, "The password is too similar to the username.")
	}

	return problems
}
