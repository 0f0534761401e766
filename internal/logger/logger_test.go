package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize_ValidLevels(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error"}

	for _, lvl := range levels {
		t.Run(lvl, func(t *testing.T) {
			err := Initialize(lvl)
			assert.NoError(t, err)
			assert.NotNil(t, Log)

			// Should not panic
			Log.Infow("test message", "level", lvl)
		})
	}
}

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize("not-a-level")
	assert.Error(t, err)
}
