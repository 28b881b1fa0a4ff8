package crmcommon

import "golang.org/x/crypto/bcrypt"

// passwordHashCost matches the cost factor the stored hashes were created
// with. Raising it only affects newly created users.
const passwordHashCost = 10

// HashPassword hashes a plaintext password with bcrypt. The plaintext is never
// stored or logged.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
