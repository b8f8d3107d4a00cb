package loghandler

import (
	"bytes"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("simulation finished", "tag", "sim", "games", 1000, "workers", 4)

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} INFO \[sim\] simulation finished games=1000 workers=4\n$`), line)
	assert.NotContains(t, line, "tag=")
}

func TestCompactHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelDebug)).With("tag", "storage", "run", 7)

	logger.Debug("exported", "rows", 3)
	assert.Contains(t, buf.String(), "DEBUG [storage] exported run=7 rows=3\n")
}

func TestCompactHandlerGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).WithGroup("http")

	logger.Warn("request failed", "path", "/api/simulate", "err", "bad request body")
	assert.Contains(t, buf.String(), `WARN request failed http.path=/api/simulate http.err="bad request body"`)
}

func TestCompactHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "ERROR shown")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
