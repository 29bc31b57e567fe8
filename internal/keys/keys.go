package keys

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Pair holds the signing key material for the whole process. It is loaded
// once at startup and never mutated afterwards, so concurrent reads need
// no locking.
type Pair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// Load reads a PEM-encoded RSA private key from path and derives the
// matching public key. A missing or unparsable key is a startup
// precondition failure: the caller must not serve authenticated routes.
func Load(path string) (*Pair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a Pair from PEM bytes.
func Parse(pemBytes []byte) (*Pair, error) {
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Pair{Private: priv, Public: &priv.PublicKey}, nil
}
