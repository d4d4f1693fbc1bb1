package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 10

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnCompare spends one bcrypt comparison so unknown usernames take as long
// as wrong passwords.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("easybooking-dummy-password")
	})
	_ = CheckPassword(dummyHash, password)
}
