// Package avatar derives default avatar image URLs from owner identities.
package avatar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// The avatar service renders an identicon from a seed. Colors follow the
// product palette.
const (
	baseURL        = "https://api.dicebear.com/7.x/identicon/svg"
	primaryColor   = "1565C0"
	secondaryColor = "BBDEFB"
)

// URL returns the deterministic avatar URL for an owner. The owner id is
// hashed so the identity-provider subject never appears in an image URL.
func URL(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	seed := hex.EncodeToString(sum[:8])
	return fmt.Sprintf("%s?seed=%s&backgroundColor=%s,%s", baseURL, seed, primaryColor, secondaryColor)
}
