package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email validation
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Phone validation: digits with optional leading +, separators allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)

	matched, _ := regexp.MatchString(`^\+?[0-9]{6,15}$`, cleaned)
	if !matched {
		return fmt.Errorf("invalid phone number format")
	}
	return nil
}

// Pickup schedule validation. Dates are calendar days, times are HH:MM.
func ValidatePickupDate(date string) error {
	if date == "" {
		return fmt.Errorf("pickup date cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("pickup date must be in YYYY-MM-DD format")
	}
	return nil
}

func ValidatePickupTime(t string) error {
	if t == "" {
		return fmt.Errorf("pickup time cannot be empty")
	}
	if _, err := time.Parse("15:04", t); err != nil {
		return fmt.Errorf("pickup time must be in HH:MM format")
	}
	return nil
}

// ValidateRequiredString rejects empty or whitespace-only values.
func ValidateRequiredString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing or invalid field: %s", field)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("field %s contains invalid UTF-8 characters", field)
	}
	return nil
}

// ValidateProofImage checks a data-URI or bare base64 payload for the
// collection proof. Size limit guards against oversized inline images.
func ValidateProofImage(proof string, maxBytes int64) error {
	if strings.TrimSpace(proof) == "" {
		return fmt.Errorf("collection proof image is required")
	}

	payload := proof
	if strings.HasPrefix(proof, "data:") {
		idx := strings.Index(proof, ",")
		if idx < 0 {
			return fmt.Errorf("malformed data URI in collection proof")
		}
		payload = proof[idx+1:]
	}

	// base64 expands by 4/3, so compare against the encoded length
	if int64(len(payload)) > maxBytes*4/3 {
		return fmt.Errorf("collection proof exceeds maximum size of %d bytes", maxBytes)
	}
	return nil
}
