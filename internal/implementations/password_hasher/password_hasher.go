package passwordhasher

import (
	"fmt"
	"pwreset/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest bcrypt cost accepted outside of tests.
const MinCost = 10

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

// NewProductionBcrypt is NewBcrypt that refuses costs below MinCost.
func NewProductionBcrypt(secret string, cost int) (*Bcrypt, error) {
	if cost < MinCost {
		return nil, fmt.Errorf("bcrypt cost must be at least %d, got %d", MinCost, cost)
	}
	return NewBcrypt(secret, cost), nil
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(string(password)+h.secret), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(password)+h.secret))
	return err == nil
}
