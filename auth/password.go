package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a salted bcrypt hash of the plain credential.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored hash. A mismatch
// is an expected outcome and comes back as false, never an error.
func VerifyPassword(plain, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
