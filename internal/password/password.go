// Package password implements the credential hashing contract: a one-way
// transform of a plaintext password to a stored digest, and verification
// against a previously stored digest.
//
// Two schemes coexist:
//
//   - SchemeSHA256 (default): SHA-256 over the UTF-8 bytes of the password,
//     rendered as lowercase hex. No salt, no work factor. This matches every
//     digest already in the users table, so it stays the default.
//   - SchemeBcrypt: salted, slow hash. Opt-in via server config; digests are
//     self-describing ("$2" prefix), so Verify handles a mixed store and a
//     deployment can harden without migrating old rows.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme selects the digest construction used for newly stored credentials.
type Scheme string

const (
	SchemeSHA256 Scheme = "sha256"
	SchemeBcrypt Scheme = "bcrypt"
)

// Hash returns the lowercase-hex SHA-256 digest of the password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HashBcrypt returns a bcrypt digest of the password at the default cost.
func HashBcrypt(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// HashWithScheme dispatches to the configured scheme. Unknown schemes fall
// back to SHA-256 so a typo in config cannot lock every new user out.
func HashWithScheme(password string, scheme Scheme) (string, error) {
	if scheme == SchemeBcrypt {
		return HashBcrypt(password)
	}
	return Hash(password), nil
}

// Verify reports whether the password matches the stored digest. The digest
// format decides the scheme: bcrypt digests start with "$2", anything else is
// treated as a hex SHA-256 digest and compared in constant time.
func Verify(password, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	candidate := Hash(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}
