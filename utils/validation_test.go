package utils_test

import (
	"testing"

	"debtflow-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+4915123456789",
		"+1 (415) 555-0132",
		"+44 20 7946 0958",
		"4915123456789",
	}
	for _, phone := range valid {
		assert.True(t, utils.ValidatePhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"+0123",
		"not a phone",
		"+49151234567890123456",
	}
	for _, phone := range invalid {
		assert.False(t, utils.ValidatePhone(phone), "expected %q to be invalid", phone)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, utils.ValidateEmail("billing@acme.test"))
	assert.True(t, utils.ValidateEmail("  spaced@acme.test  "))
	assert.False(t, utils.ValidateEmail("no-at-sign"))
	assert.False(t, utils.ValidateEmail("missing@tld"))
	assert.False(t, utils.ValidateEmail(""))
}

func TestGenerateResponseToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := utils.GenerateResponseToken()
		assert.Len(t, token, 32)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
