// utils/token.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateResponseToken returns an unguessable URL-safe token used to
// correlate inbound customer replies to the reminder that invited them.
func GenerateResponseToken() string {
	key := make([]byte, 24)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate response token")
	}
	return base64.RawURLEncoding.EncodeToString(key)
}
