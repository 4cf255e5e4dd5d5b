package chatbot

import (
	"strconv"
	"strings"
	"time"
)

// ValidatorKind enumerates the answer checks used by the question catalog.
// A single dispatch function interprets the kind, so questions carry no
// function references.
type ValidatorKind int

const (
	ValidateNonEmpty ValidatorKind = iota
	ValidateDate
	ValidateNumber
	ValidateOneOf
)

const dateLayout = "2006-01-02"

// Validate reports whether the trimmed answer text satisfies the given
// validator kind. It never panics on malformed input; bad dates and numbers
// simply fail the check. allowed is consulted only for ValidateOneOf.
func Validate(kind ValidatorKind, allowed []string, text string) bool {
	text = strings.TrimSpace(text)

	switch kind {
	case ValidateNonEmpty:
		return len(text) > 0
	case ValidateDate:
		_, err := time.Parse(dateLayout, text)
		return err == nil
	case ValidateNumber:
		_, err := strconv.ParseFloat(text, 64)
		return err == nil
	case ValidateOneOf:
		lower := strings.ToLower(text)
		for _, option := range allowed {
			if lower == option {
				return true
			}
		}
		return false
	default:
		return false
	}
}
