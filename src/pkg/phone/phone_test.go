package phone_test

import (
	"testing"

	"agent-portal-service/src/pkg/phone"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		msisdn   string
		expected bool
	}{
		{"0241234567", true},
		{"0541234567", true},
		{"0201234567", true},
		{"0561234567", true},
		{"0231234567", false},
		{"024123456", false},
		{"02412345678", false},
		{"024123456a", false},
		{"1241234567", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, phone.Valid(tc.msisdn), tc.msisdn)
	}
}
