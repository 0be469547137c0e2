package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeWriter(t *testing.T) {
	t.Run("Level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWriter(&buf, "info", "text")

		Debug("hidden")
		Info("shown", "key", "value")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("JSON format", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWriter(&buf, "debug", "json")

		ExternalServiceResult("toolrent-api", "GET /tools", errors.New("boom"))

		assert.Contains(t, buf.String(), `"operation":"GET /tools"`)
		assert.Contains(t, buf.String(), `"error":"boom"`)
	})
}

func TestLevels(t *testing.T) {
	t.Run("Unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWriter(&buf, "verbose", "text")

		Debug("hidden")
		Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("Warning alias", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWriter(&buf, "WARNING", "text")

		Info("hidden")
		ExitMethodWithError("tools.delete", errors.New("boom"))

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "method=tools.delete")
	})
}
