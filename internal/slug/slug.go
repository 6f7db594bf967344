package slug

import (
	"fmt"
	"strings"
	"time"
)

// Make lowercases the name, replaces spaces with dashes and strips
// everything that is not alphanumeric or a dash.
func Make(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), " ", "-")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// MakeUnique appends the current unix-millis timestamp, so repeated
// product names never collide.
func MakeUnique(name string) string {
	return fmt.Sprintf("%s-%d", Make(name), time.Now().UnixMilli())
}
