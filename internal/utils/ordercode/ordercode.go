package ordercode

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Unambiguous alphabet: no 0/O, 1/I/L.
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// Generate produces a human-readable order code such as ORD-240131-7XK2M.
// The random suffix makes collisions unlikely; the unique index on
// orders.code catches the rest.
func Generate(prefix string, now time.Time) (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), string(b)), nil
}
