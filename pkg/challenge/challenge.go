// Package challenge generates the PKCE-style code challenge sent with
// third-party login requests.
package challenge

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Size is the number of random bytes behind every challenge.
const Size = 32

// Generate returns Size random bytes from crypto/rand encoded as unpadded
// URL-safe base64.
func Generate() (string, error) {
	return generate(rand.Reader)
}

func generate(r io.Reader) (string, error) {
	b := make([]byte, Size)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
