package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUsername(t *testing.T) {
	assert.Empty(t, getUsername(context.Background()))

	ctx := context.WithValue(context.Background(), usernameKey, "alice")
	assert.Equal(t, "alice", getUsername(ctx))
}

func TestFormatPayload(t *testing.T) {
	assert.Equal(t, "<nil>", formatPayload(nil))
	assert.Equal(t, `{"a":1}`, formatPayload(map[string]int{"a": 1}))
	// Unmarshalable payloads fall back to the type name.
	assert.Equal(t, "chan int", formatPayload(make(chan int)))
}
