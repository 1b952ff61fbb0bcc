package utils

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// The directory only needs to avoid holding plaintext; the minimum cost keeps
// session setup fast.
const passwordCost = bcrypt.MinCost

// bcrypt reads at most 72 bytes, so passwords are reduced to a fixed-length
// digest first and any password length is accepted.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(prehash(password), passwordCost)
}

func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, prehash(password)) == nil
}
