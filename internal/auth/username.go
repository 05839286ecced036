package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// maxSuffixProbes caps the sequential bob, bob1, bob2, ... search before
// falling back to a random suffix, so a hostile registration pattern
// cannot drive an unbounded loop.
const maxSuffixProbes = 50

var usernameCharsRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// DeriveUsername builds a unique username from an email's local part.
// taken reports whether a candidate is already in use.
func DeriveUsername(email string, taken func(string) (bool, error)) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at >= 0 {
		base = email[:at]
	}
	base = usernameCharsRe.ReplaceAllString(base, "")
	if len(base) < 3 {
		base = "user" + base
	}
	if len(base) > 40 {
		base = base[:40]
	}

	candidate := base
	for i := 1; i <= maxSuffixProbes; i++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}

	// All sequential probes taken; use a random suffix instead.
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base + hex.EncodeToString(buf), nil
}
