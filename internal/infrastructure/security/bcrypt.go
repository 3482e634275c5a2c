package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned when asked to hash an empty secret.
var ErrEmptySecret = errors.New("secret must not be empty")

// BcryptCodec implements ports.CredentialCodec with salted bcrypt hashes.
type BcryptCodec struct {
	cost int
}

// NewBcryptCodec returns a codec using cost, falling back to
// bcrypt.DefaultCost when cost is outside bcrypt's accepted range.
func NewBcryptCodec(cost int) *BcryptCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptCodec{cost: cost}
}

func (c *BcryptCodec) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), c.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (c *BcryptCodec) Verify(secret, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}

// Cost reports the work factor new hashes are produced with.
func (c *BcryptCodec) Cost() int { return c.cost }
