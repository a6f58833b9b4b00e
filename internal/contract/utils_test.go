package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainCoverageLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{name: "zero", input: 0, expected: UntrackedValue},
		{name: "just before partial", input: 49, expected: UntrackedValue},
		{name: "exactly partial", input: 50, expected: PartialValue},
		{name: "just before tracked", input: 79, expected: PartialValue},
		{name: "exactly tracked", input: 80, expected: TrackedValue},
		{name: "full", input: 100, expected: TrackedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainCoverageLabel(tt.input))
		})
	}
}

func TestColorLabelsKeepText(t *testing.T) {
	assert.Contains(t, GetColorCoverageLabel(90), TrackedValue)
	assert.Contains(t, GetColorCoverageLabel(10), UntrackedValue)
	for _, sev := range schema.AllSeverities {
		assert.Contains(t, GetColorSeverityLabel(sev), string(sev))
	}
	assert.Contains(t, GetColorOwnerLabel(schema.SharedOwner), schema.SharedOwner)
	assert.Contains(t, GetColorOwnerLabel("alice"), "alice")
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this-is-too-long", 10, "this-is..."},
		{"abc", 3, "abc"},
		{"abcdef", 3, "abcdef"},
		{"李明李明李明", 5, "李明..."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, path, f.Name())
}

func TestConfigureLogger(t *testing.T) {
	logger := logrus.New()

	require.NoError(t, ConfigureLogger(logger, "debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	require.NoError(t, ConfigureLogger(logger, "", "text"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	assert.Error(t, ConfigureLogger(logger, "loud", ""))
	assert.Error(t, ConfigureLogger(logger, "", "xml"))
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHIPBOARD_TEST_DOTENV=loaded\n"), 0o600))
	t.Setenv("SHIPBOARD_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("SHIPBOARD_TEST_DOTENV"))

	require.NoError(t, loadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("SHIPBOARD_TEST_DOTENV"))

	t.Setenv("SHIPBOARD_TEST_DOTENV", "preset")
	require.NoError(t, loadEnvFiles(path))
	assert.True(t, strings.EqualFold("preset", os.Getenv("SHIPBOARD_TEST_DOTENV")), "existing env must win")
}
