package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash at the given cost. The cost comes from
// config so tests can use the minimum and production a slower setting.
func HashPassword(plain string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// ComparePassword checks a candidate password against a stored bcrypt hash.
func ComparePassword(storedHash, candidate string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate))
}
