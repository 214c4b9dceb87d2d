package logger

import (
	"bytes"
	"strings"
	"testing"

	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitWithWriter(t *testing.T) {
	t.Run("defaults_to_info_console", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")

		var buf bytes.Buffer
		InitWithWriter(&buf)
		Logger.Debug().Msg("hidden")
		Logger.Info().Msg("hello")

		out := strings.TrimSpace(buf.String())
		assert.Equal(t, "info", Logger.GetLevel().String())
		assert.Equal(t, "info", zlog.Logger.GetLevel().String())
		assert.False(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, "hello")
		assert.NotContains(t, out, "hidden")
	})

	t.Run("invalid_level_falls_back_to_info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "not-a-level")
		t.Setenv("LOG_FORMAT", "console")

		var buf bytes.Buffer
		InitWithWriter(&buf)
		assert.Equal(t, "info", Logger.GetLevel().String())
	})

	t.Run("json_format", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")

		var buf bytes.Buffer
		InitWithWriter(&buf)
		Logger.Debug().Str("k", "v").Msg("hello")

		out := strings.TrimSpace(buf.String())
		assert.True(t, strings.HasPrefix(out, "{") && strings.HasSuffix(out, "}"), out)
		assert.Contains(t, out, `"k":"v"`)
		assert.Contains(t, out, `"service":"courtsplit"`)
		assert.Contains(t, out, `"message":"hello"`)
	})
}
