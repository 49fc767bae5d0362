package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		ok   bool
	}{
		{"good", "Str0ngp@ss", true},
		{"too short", "Ab1!", false},
		{"no lowercase", "ABCDEFG1!", false},
		{"no uppercase", "weakpass1!", false},
		{"no digit", "Weakpassword!", false},
		{"no special character", "Abcdefg1", false},
		{"exactly eight", "Abcdef1!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, validPassword(tc.pw))
		})
	}
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, emailPattern.MatchString("user@example.com"))
	assert.False(t, emailPattern.MatchString("user@"))
	assert.False(t, emailPattern.MatchString("not an email"))
	assert.False(t, emailPattern.MatchString("user@host"))
}
