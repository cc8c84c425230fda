// Package validate holds input validation for user-supplied fields.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Email validates an email address. Empty is allowed: the field is optional.
func Email(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Slug validates a URL slug: lowercase letters, digits, and single interior
// hyphens.
func Slug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug must contain only lowercase letters, numbers, and hyphens")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}
	if strings.Contains(slug, "--") {
		return fmt.Errorf("slug cannot contain consecutive hyphens")
	}
	return nil
}

// Name validates a display name for members, programs, and groups.
func Name(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if len(name) > 255 {
		return fmt.Errorf("name is too long (maximum 255 characters)")
	}
	return nil
}

// Transcript validates transcript length against the configured bounds. The
// minimum applies to the trimmed text, the maximum to the raw text.
func Transcript(transcript string, minLength, maxLength int) error {
	if transcript == "" {
		return fmt.Errorf("transcript cannot be empty")
	}
	if len(strings.TrimSpace(transcript)) < minLength {
		return fmt.Errorf("transcript is too short (minimum %d characters)", minLength)
	}
	if len(transcript) > maxLength {
		return fmt.Errorf("transcript is too long (maximum %d characters)", maxLength)
	}
	return nil
}

// SlugFromName derives a URL-friendly slug from a display name.
func SlugFromName(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
