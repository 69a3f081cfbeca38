package service

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// sanitizeText strips markup and control characters from a single-line
// text field and trims surrounding whitespace.
func sanitizeText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// normalizeEmail validates the address and returns its canonical
// lowercase form.
func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

// parseCapacity turns stored capacity text into an integer. Anything
// non-numeric or non-positive means no capacity limit.
func parseCapacity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
