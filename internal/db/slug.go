package db

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrSlugRequired 在无法从标题推导出 slug 时返回。
var ErrSlugRequired = errors.New("slug could not be derived")

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a lowercase, hyphenated, ASCII-only slug.
// Accents are folded ("Café" -> "cafe"); characters without an ASCII
// decomposition are dropped.
func Slugify(value string) string {
	decomposed := norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	slug := strings.ToLower(b.String())
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-_")
}

// ensureSlug fills an empty slug from source. A non-empty slug is kept as is.
func ensureSlug(slug *string, source string) error {
	if strings.TrimSpace(*slug) != "" {
		*slug = strings.TrimSpace(*slug)
		return nil
	}
	*slug = Slugify(source)
	if *slug == "" {
		return ErrSlugRequired
	}
	return nil
}
