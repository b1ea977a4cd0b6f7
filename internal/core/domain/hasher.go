package domain

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PasswordHasher derives the login password from a username. Implementations must be
// deterministic and unsalted: sign-up and sign-in derive the password independently.
type PasswordHasher interface {
	Derive(username string) string
}

type md5Hasher struct{}

func (md5Hasher) Derive(username string) string {
	sum := md5.Sum([]byte(username))
	return hex.EncodeToString(sum[:])
}

type sha256Hasher struct{}

func (sha256Hasher) Derive(username string) string {
	sum := sha256.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}

var (
	MD5Hasher    PasswordHasher = md5Hasher{}
	SHA256Hasher PasswordHasher = sha256Hasher{}
)

// HasherByName maps a config value ("md5", "sha256") to a hasher.
func HasherByName(name string) (PasswordHasher, error) {
	switch name {
	case "", "md5":
		return MD5Hasher, nil
	case "sha256":
		return SHA256Hasher, nil
	default:
		return nil, fmt.Errorf("unknown password hash %q", name)
	}
}
