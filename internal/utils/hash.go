package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

func HashPin(pin string) (string, error) {
	return HashPinWithCost(pin, bcryptCost)
}

func HashPinWithCost(pin string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	return string(b), err
}

// CheckPin compares in constant time; an empty hash never matches.
func CheckPin(hashed, pin string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pin)) == nil
}
