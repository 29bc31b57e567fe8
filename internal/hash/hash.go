package hash

import "golang.org/x/crypto/bcrypt"

// saltCost is fixed for every stored credential; changing it only affects
// hashes created afterwards, existing ones keep verifying.
const saltCost = 10

func Password(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), saltCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Check reports whether password matches the stored bcrypt hash.
// A mismatch is a plain false, never an error.
func Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
