package jellyfin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"jf.example.org":           "https://jf.example.org",
		"  jf.example.org  ":       "https://jf.example.org",
		"http://jf.example.org/":   "http://jf.example.org",
		"https://jf.example.org//": "https://jf.example.org",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeURL(in), "input %q", in)
	}
}

func TestSetToken(t *testing.T) {
	c := NewClient("jf.example.org")
	c.SetToken("abc", "user-1")

	assert.Equal(t, "abc", c.Token())
	assert.Equal(t, "user-1", c.UserID())
	assert.Equal(t, "https://jf.example.org", c.ServerURL())
}
