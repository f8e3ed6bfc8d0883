// Package gravatar builds Gravatar image URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL returns the Gravatar URL for the given email: "pg" rating with the
// "mystery man" fallback for addresses that have no registered avatar.
func URL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=pg&d=mm", hex.EncodeToString(sum[:]), size)
}
