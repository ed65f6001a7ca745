package logger

import (
	"testing"

	"question-bank/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitialize(t *testing.T) {
	log = nil
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.True(t, Get().Core().Enabled(-1))

	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}
