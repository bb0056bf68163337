package slug

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrExhausted is returned when Unique cannot find a free slug
// within the retry budget.
var ErrExhausted = errors.New("could not generate a unique slug")

const maxAttempts = 10

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make normalizes text into a URL slug: diacritics stripped, lowercased,
// whitespace collapsed to single hyphens, everything outside [a-z0-9-]
// dropped, hyphen runs collapsed, edge hyphens trimmed.
// Always returns a string, possibly empty.
func Make(text string) string {
	s, _, err := transform.String(stripMarks, text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// ExistsFunc reports whether a record other than excludeID already uses slug.
type ExistsFunc func(ctx context.Context, slug, excludeID string) (bool, error)

// Unique computes a slug for title and retries with a short random suffix
// while exists reports a collision. excludeID lets updates keep their own
// slug. Gives up after a bounded number of attempts.
func Unique(ctx context.Context, title, excludeID string, exists ExistsFunc) (string, error) {
	s := Make(title)
	for i := 0; i < maxAttempts; i++ {
		taken, err := exists(ctx, s, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return s, nil
		}
		s = Make(title) + fmt.Sprintf("-%06x", rand.Intn(1<<24))
	}
	return "", ErrExhausted
}
