package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jordan@example.com"))
	assert.NoError(t, ValidateEmail("a.b+tag@sub.example.co"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jordan@example.com", NormalizeEmail("  Jordan@Example.COM "))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("+4915512345678"))
	assert.NoError(t, ValidatePhone("0155 1234-5678"))
	assert.NoError(t, ValidatePhone("(030) 123456"))

	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("call me"))
	assert.Error(t, ValidatePhone("123"))
}

func TestValidatePickupSchedule(t *testing.T) {
	assert.NoError(t, ValidatePickupDate("2026-09-15"))
	assert.Error(t, ValidatePickupDate("15/09/2026"))
	assert.Error(t, ValidatePickupDate("2026-13-40"))
	assert.Error(t, ValidatePickupDate(""))

	assert.NoError(t, ValidatePickupTime("14:30"))
	assert.NoError(t, ValidatePickupTime("09:05"))
	assert.Error(t, ValidatePickupTime("2pm"))
	assert.Error(t, ValidatePickupTime("25:00"))
	assert.Error(t, ValidatePickupTime(""))
}

func TestValidateRequiredString(t *testing.T) {
	assert.NoError(t, ValidateRequiredString("name", "Jordan"))
	assert.Error(t, ValidateRequiredString("name", ""))
	assert.Error(t, ValidateRequiredString("name", "   "))
	assert.Error(t, ValidateRequiredString("name", string([]byte{0xff, 0xfe})))
}

func TestValidateProofImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	assert.NoError(t, ValidateProofImage(payload, 1024))
	assert.NoError(t, ValidateProofImage("data:image/png;base64,"+payload, 1024))

	assert.Error(t, ValidateProofImage("", 1024))
	assert.Error(t, ValidateProofImage("   ", 1024))
	assert.Error(t, ValidateProofImage("data:image/png;base64", 1024))

	huge := strings.Repeat("A", 2000)
	assert.Error(t, ValidateProofImage(huge, 1024))
}
