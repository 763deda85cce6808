package errors

import (
	"unicode"
)

// MaxIdentifierLength bounds block names accepted by every input format.
const MaxIdentifierLength = 64

// ValidateIdentifier validates a block name.
//
// Names follow the text grammar: one or more ASCII letters or digits. The
// same rule is applied to JSON and HCL input so that every diagram can be
// written back in the text form.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "block name cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return New(ErrCodeInvalidInput, "block name too long (max %d characters)", MaxIdentifierLength)
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidInput, "block name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// ValidateText validates the display text of a block.
// Text is drawn on a single logical line before wrapping, so control
// characters (including newlines and tabs) are rejected.
func ValidateText(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "block text contains control character %q", r)
		}
	}
	return nil
}
