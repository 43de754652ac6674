package utils

import "golang.org/x/crypto/bcrypt"

// HashCost is deliberately above bcrypt's default so brute-forcing a
// leaked hash stays expensive.
const HashCost = 12

// HashPassword generates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if password matches the stored hash.
// bcrypt's comparison is constant-time.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
