// Package auth checks the shared secret that guards every API call and the bot.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Checker compares candidates against the configured secret. A secret that
// looks like a bcrypt hash is verified with bcrypt, anything else is compared
// in constant time.
type Checker struct {
	secret []byte
	hashed bool
}

func NewChecker(secret string) *Checker {
	return &Checker{
		secret: []byte(secret),
		hashed: IsBcryptHash(secret),
	}
}

// IsBcryptHash reports whether s has a bcrypt prefix
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Check reports whether candidate matches. An empty secret never matches.
func (c *Checker) Check(candidate string) bool {
	if len(c.secret) == 0 || candidate == "" {
		return false
	}
	if c.hashed {
		return bcrypt.CompareHashAndPassword(c.secret, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(c.secret, []byte(candidate)) == 1
}

// Hash returns a bcrypt hash suitable for APP_PASSWORD
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
