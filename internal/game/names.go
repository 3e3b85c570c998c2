package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// NormalizeName collapses runs of whitespace and trims the ends.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateName normalizes name and reports why it cannot be used as a seat name.
func ValidateName(name string) (string, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", errors.New("name is required")
	}
	if len([]rune(normalized)) > maxNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	for _, r := range normalized {
		if !unicode.IsPrint(r) {
			return "", errors.New("name contains unsupported characters")
		}
	}
	return normalized, nil
}
