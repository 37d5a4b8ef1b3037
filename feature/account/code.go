package account

import "crypto/rand"

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateMatchCode produces a short uppercase alphanumeric matching code
// for a deposit intent. It is pure generation: no uniqueness is enforced
// here. Collisions are made harmless downstream because matched orders are
// deduplicated by the platform's order id, and the support message carries
// the user id next to the code.
func GenerateMatchCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
