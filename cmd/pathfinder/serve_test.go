package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_RequiresGraph(t *testing.T) {
	_, _, err := executeCommand(t, "serve", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--snapshot or --database-url")
}
