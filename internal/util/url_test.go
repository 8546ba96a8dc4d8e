package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRedirectSafe(t *testing.T) {
	const base = "https://console.example.com"

	tests := []struct {
		target string
		want   bool
	}{
		{"", true},
		{"/app", true},
		{"/app/users?q=tanaka", true},
		{"https://console.example.com/app", true},
		{"//evil.com", false},
		{"/\\evil.com", false},
		{"https://evil.com/app", false},
		{"javascript:alert(1)", false},
		{"/app\r\nSet-Cookie: x=1", false},
		{"app", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRedirectSafe(tt.target, base))
		})
	}
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/app/users", SafeRedirect("/app/users", "", "/app"))
	assert.Equal(t, "/app", SafeRedirect("", "", "/app"))
	assert.Equal(t, "/app", SafeRedirect("//evil.com", "", "/app"))
}
