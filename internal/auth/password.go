package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an account password at the given bcrypt cost. Costs
// below the bcrypt minimum fall back to the library default, so a missing
// AUTH_BCRYPT_COST never produces weak hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a plaintext password against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
