package auth

import "golang.org/x/crypto/bcrypt"

// HashOperatorPassword hashes the dashboard operator password for
// storage in AUTH_ADMIN_PASSWORD_HASH. Used at boot when only the
// plaintext AUTH_ADMIN_PASSWORD is configured.
func HashOperatorPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyOperatorPassword checks a login attempt against the stored hash.
func VerifyOperatorPassword(hashed, candidate string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate))
}
