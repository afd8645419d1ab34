package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func raw() map[string]any {
	return map[string]any{
		"username": "  Alice ",
		"age":      30,
		"address":  map[string]any{"city": " Paris", "zip": []any{" 75 ", 1}},
		"tags":     []string{" A", "B "},
	}
}

func TestMapTrimSpace(t *testing.T) {
	m := raw()
	MapTrimSpace(m)
	assert.Equal(t, map[string]any{
		"username": "Alice",
		"age":      30,
		"address":  map[string]any{"city": "Paris", "zip": []any{"75", 1}},
		"tags":     []string{"A", "B"},
	}, m)
}

func TestMapMulti(t *testing.T) {
	m := raw()
	MapMulti(m, MapTrimSpace, MapToLower)
	assert.Equal(t, "alice", m["username"])
	assert.Equal(t, "paris", m["address"].(map[string]any)["city"])
}

func TestKeys(t *testing.T) {
	m := raw()
	s := "  x "
	m["ptr"] = &s
	MapMulti(m, Keys(strings.ToUpper, "username", "ptr", "missing"))
	assert.Equal(t, "  ALICE ", m["username"])
	assert.Equal(t, "  X ", s)
	assert.Equal(t, " Paris", m["address"].(map[string]any)["city"])
	assert.NotContains(t, m, "missing")

	MapStringFunc(m, strings.TrimSpace)
	assert.Equal(t, "ALICE", m["username"])
}
