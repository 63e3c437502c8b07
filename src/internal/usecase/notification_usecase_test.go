package usecase_test

import (
	"testing"

	"agent-portal-service/src/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestShouldPlaySound(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		current  int
		expected bool
	}{
		{"no announcements at all", 0, 0, false},
		{"first observation after login", 0, 3, false},
		{"count increased", 3, 5, true},
		{"count unchanged", 5, 5, false},
		{"count decreased after reading", 5, 2, false},
		{"single step increase", 1, 2, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, usecase.ShouldPlaySound(tc.previous, tc.current))
		})
	}
}
