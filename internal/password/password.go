// Package password hashes and verifies account credentials.
package password

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	unusablePrefix = "!"
)

// Hasher turns a plaintext password into an encoded credential and checks
// plaintexts against credentials it produced.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) bool
}

// New returns the hasher for algorithm. bcryptCost is ignored by argon2id.
func New(algorithm string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmBcrypt:
		return NewBcrypt(bcryptCost), nil
	case AlgorithmArgon2id:
		return NewArgon2id(), nil
	default:
		return nil, fmt.Errorf("unsupported password algorithm %q", algorithm)
	}
}

// Unusable returns a credential no plaintext verifies against.
func Unusable() string {
	return unusablePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func IsUsable(encoded string) bool {
	return encoded != "" && !strings.HasPrefix(encoded, unusablePrefix)
}
