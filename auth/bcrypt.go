// Package auth provides credential hashing and token issuance for the
// vacation tracker. The vacation domain treats both as opaque capabilities.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/warp/vacation-tracker/vacation"
)

// bcryptHashPrefixLen covers "$2a$" + cost + "$" + the 22-character salt.
const bcryptHashPrefixLen = 29

// BcryptHasher implements vacation.PasswordHasher using bcrypt.
type BcryptHasher struct {
	Cost int // 0 = bcrypt.DefaultCost
}

var _ vacation.PasswordHasher = BcryptHasher{}

// Hash returns the bcrypt hash of the password plus its salt. bcrypt
// embeds the salt in the hash; it is returned separately as well because
// the user schema stores the pair.
func (h BcryptHasher) Hash(password string) (hash, salt string, err error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	raw, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", "", fmt.Errorf("bcrypt: %w", err)
	}
	hash = string(raw)
	if len(hash) < bcryptHashPrefixLen {
		return "", "", fmt.Errorf("bcrypt: unexpected hash length %d", len(hash))
	}
	return hash, hash[:bcryptHashPrefixLen], nil
}

// Verify reports whether the password matches the stored hash.
func Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
