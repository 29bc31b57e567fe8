package tokens

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ticketplace/backend/internal/keys"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"

	AccessTTL  = 12 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// Claims is the payload carried by both token kinds. Subject is the user
// id; refresh tokens additionally get a uuid jti.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Issuer signs access and refresh tokens with the process private key.
type Issuer struct {
	private *rsa.PrivateKey
	now     func() time.Time
}

func NewIssuer(kp *keys.Pair) *Issuer {
	return &Issuer{private: kp.Private, now: time.Now}
}

func (i *Issuer) Access(userID string) (string, time.Time, error) {
	return i.issue(userID, KindAccess, i.now().Add(AccessTTL))
}

func (i *Issuer) Refresh(userID string) (string, time.Time, error) {
	return i.issue(userID, KindRefresh, i.now().Add(RefreshTTL))
}

func (i *Issuer) issue(userID, kind string, exp time.Time) (string, time.Time, error) {
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if kind == KindRefresh {
		claims.ID = uuid.NewString()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.private)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, exp, nil
}

// Verifier checks tokens against the cached public key. The signing
// method is pinned to RS256: a token declaring any other algorithm fails
// as signature-invalid, whatever key it was signed with.
type Verifier struct {
	public *rsa.PublicKey
}

func NewVerifier(kp *keys.Pair) *Verifier {
	return &Verifier{public: kp.Public}
}

func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.public, nil
	})
	if err != nil {
		return nil, translate(err)
	}
	if !tkn.Valid {
		return nil, ErrSignatureInvalid
	}
	return &claims, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrSignatureInvalid
	}
}
