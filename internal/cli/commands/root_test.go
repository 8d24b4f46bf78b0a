package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with colors off and returns what it printed
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "reflector", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"version", "types", "inspect", "resolve"} {
		assert.Contains(t, names, expected)
	}

	for _, flag := range []string{"config", "access-policy", "log-level", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-01-01"
	GoVersion = "go1.23"

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Reflector version: ")
	assert.Contains(t, stdout, "1.0.0-test")
	assert.Contains(t, stdout, "abc123")
	assert.Contains(t, stdout, "go1.23")
}

func TestInvalidAccessPolicyFlag(t *testing.T) {
	_, stderr, err := execute(t, "", "types", "--access-policy", "lenient")
	require.Error(t, err)

	var reported *reportedError
	assert.ErrorAs(t, err, &reported)
	assert.Contains(t, stderr, "CONFIGURATION ERROR")
	assert.Contains(t, stderr, "lenient")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, stderr, err := execute(t, "", "types", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, stderr, "CONFIGURATION ERROR")
}
