package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxSecretBytes is the longest input bcrypt hashes without truncation.
const maxSecretBytes = 72

// ErrSecretTooLong is returned by Hash for secrets longer than bcrypt accepts.
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// Vault hashes and verifies secrets with bcrypt.
type Vault struct {
	cost int
}

// NewVault builds a vault, clamping cost into bcrypt's accepted range.
func NewVault(cost int) *Vault {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Vault{cost: cost}
}

// Cost returns the configured work factor.
func (v *Vault) Cost() int {
	return v.cost
}

// Hash hashes a plaintext secret with a fresh random salt.
func (v *Vault) Hash(secret string) (string, error) {
	if len(secret) > maxSecretBytes {
		return "", ErrSecretTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), v.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether secret matches hash. Malformed hashes never match.
func (v *Vault) Verify(secret, hash string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
