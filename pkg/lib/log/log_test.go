package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDefault 测试结束后恢复默认 logger
func captureDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseLevels(t *testing.T) {
	lv, err := ParseLevels("core/eventbus=debug, core/executor=error ,warn")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lv.Default)
	assert.Equal(t, LevelDebug, lv.For("core/eventbus"))
	assert.Equal(t, LevelError, lv.For("core/executor"))
	assert.Equal(t, LevelWarn, lv.For("core/metrics"))

	lv, err = ParseLevels("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lv.Default)

	_, err = ParseLevels("core/eventbus=loud")
	assert.Error(t, err)
	_, err = ParseLevels("=debug")
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	captureDefault(t)

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, FormatJSON, LevelWarn))

	l := Logger("core/test")
	l.Info("隐藏")
	l.Warn("可见", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "隐藏")
	assert.Contains(t, out, `"component":"core/test"`)
	assert.Contains(t, out, `"k":"v"`)

	assert.Error(t, Setup(&buf, "xml", LevelInfo))
}

func TestSetupLevels_PerComponent(t *testing.T) {
	captureDefault(t)

	var buf bytes.Buffer
	require.NoError(t, SetupLevels(&buf, FormatText, "core/eventbus=debug,warn"))

	Logger("core/eventbus").Debug("bus-debug")
	Logger("core/executor").Debug("exec-debug")
	Logger("core/executor").Info("exec-info")
	Logger("core/executor").Warn("exec-warn")

	out := buf.String()
	assert.Contains(t, out, "bus-debug")
	assert.NotContains(t, out, "exec-debug")
	assert.NotContains(t, out, "exec-info")
	assert.Contains(t, out, "exec-warn")

	assert.Error(t, SetupLevels(&buf, FormatText, "nope"))
}

func TestLazyLogger_With(t *testing.T) {
	captureDefault(t)

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, FormatText, LevelDebug))

	l := Logger("core/with")
	assert.Equal(t, "core/with", l.Component())
	l.With("storage", "abc").Debug("附加属性")
	assert.Contains(t, buf.String(), "storage=abc")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc", TruncateID("abc", 8))
	assert.Equal(t, "01234567", TruncateID("0123456789", 8))
}
