// Package shortcode generates and validates short codes. Generation draws
// from an alphabet with visually ambiguous characters (0/O, I/l/1) removed;
// validation is a pure format check shared by generated and custom codes.
package shortcode

import (
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the safe character set used for generated codes.
const Alphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789-"

const (
	// MinLength and MaxLength bound every short code, generated or custom.
	MinLength = 3
	MaxLength = 20

	// DefaultLength is used when no length is configured.
	DefaultLength = 6
)

var reservedCodes = map[string]struct{}{
	"api":      {},
	"admin":    {},
	"user":     {},
	"login":    {},
	"logout":   {},
	"register": {},
	"reset":    {},
	"forgot":   {},
}

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Generator produces random short codes from the safe alphabet using a
// cryptographically secure source. It performs no collision checking.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a random code of the given length.
func (g *Generator) Generate(length int) (string, error) {
	const op = "shortcode.Generator.Generate"

	code, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

// ValidateFormat reports whether code is an acceptable short code: length in
// [MinLength, MaxLength], alphanumeric-plus-hyphen, no leading or trailing
// hyphen, and not a reserved word. Reserved word matching is case-sensitive.
func ValidateFormat(code string) bool {
	if len(code) < MinLength || len(code) > MaxLength {
		return false
	}
	if !codePattern.MatchString(code) {
		return false
	}
	if code[0] == '-' || code[len(code)-1] == '-' {
		return false
	}
	if _, ok := reservedCodes[code]; ok {
		return false
	}
	return true
}
