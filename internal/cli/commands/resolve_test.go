package commands

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveCommand(t *testing.T) {
	vars := writeFile(t, "vars.yaml", `
host: db.internal
database:
  name: app
  user: ada
`)
	template := writeFile(t, "app.conf", "url=jdbc://${host}/${database.name}?user=${database.user}\n")

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "file with variables",
			args:     []string{template, "--vars", vars},
			expected: "url=jdbc://db.internal/app?user=ada\n",
		},
		{
			name:     "stdin with assignments",
			stdin:    "${greeting}, ${name}!",
			args:     []string{"--set", "greeting=Hello", "--set", "name=world"},
			expected: "Hello, world!",
		},
		{
			name:     "assignments override files",
			stdin:    "${host}",
			args:     []string{"-", "--vars", vars, "--set", "host=localhost"},
			expected: "localhost",
		},
		{
			name:     "defaults",
			stdin:    "${host:localhost}:${port:5432}",
			args:     []string{"--vars", vars, "--defaults"},
			expected: "db.internal:5432",
		},
		{
			name:     "defaults disabled",
			stdin:    "${port:5432}",
			args:     []string{"--vars", vars},
			expected: "${port:5432}",
		},
		{
			name:     "custom separator",
			stdin:    "${port?:5432} ${host:x}",
			args:     []string{"--set", "host=h", "--defaults", "--separator", "?:"},
			expected: "5432 ${host:x}",
		},
		{
			name:     "defaults enabled by the variables",
			stdin:    "${port:5432}",
			args:     []string{"--set", "parsing.property-parser.enable-default-value=true"},
			expected: "5432",
		},
		{
			name:     "flag overrides the variables",
			stdin:    "${port:5432}",
			args:     []string{"--set", "parsing.property-parser.enable-default-value=true", "--defaults=false"},
			expected: "${port:5432}",
		},
		{
			name:     "escaped placeholder",
			stdin:    `\${host} ${host}`,
			args:     []string{"--vars", vars},
			expected: "${host} db.internal",
		},
		{
			name:     "no store",
			stdin:    "${host:default}",
			args:     []string{"--defaults"},
			expected: "${host:default}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.stdin, append([]string{"resolve"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestResolveCommand_Unresolved(t *testing.T) {
	stdout, stderr, err := execute(t, "${b} ${a} ${b}", "resolve", "--set", "c=1")
	require.NoError(t, err)
	assert.Equal(t, "${b} ${a} ${b}", stdout)
	assert.Contains(t, stderr, "2 placeholder(s) left unresolved: a, b")

	_, stderr, err = execute(t, "${a}", "resolve", "--fail-unresolved")
	require.Error(t, err)
	assert.Contains(t, stderr, "1 placeholder(s) left unresolved: a")
}

func TestResolveCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "", "resolve", filepath.Join(t.TempDir(), "missing.conf"))
	assert.ErrorContains(t, err, "failed to read input")

	_, _, err = execute(t, "x", "resolve", "--set", "novalue")
	assert.ErrorContains(t, err, "expected key=value")

	_, _, err = execute(t, "x", "resolve", "--vars", writeFile(t, "bad.yaml", "- a\n"))
	assert.ErrorContains(t, err, "expected a mapping")
}

func TestResolveCommand_TerminalStdin(t *testing.T) {
	restore := isTerminal
	isTerminal = func(io.Reader) bool { return true }
	t.Cleanup(func() { isTerminal = restore })

	_, _, err := execute(t, "", "resolve")
	assert.ErrorContains(t, err, "no input")
}

func TestResolveCommand_Interactive(t *testing.T) {
	restoreTerminal, restorePrompt := isTerminal, promptForValue
	t.Cleanup(func() {
		isTerminal = restoreTerminal
		promptForValue = restorePrompt
	})
	isTerminal = func(io.Reader) bool { return true }

	var asked []string
	promptForValue = func(key string) (string, error) {
		asked = append(asked, key)
		return "<" + key + ">", nil
	}

	template := writeFile(t, "app.conf", "${user}@${host}/${db}")
	stdout, stderr, err := execute(t, "", "resolve", template, "--set", "host=local", "--interactive")
	require.NoError(t, err)

	assert.Equal(t, []string{"db", "user"}, asked)
	assert.Equal(t, "<user>@local/<db>", stdout)
	assert.NotContains(t, stderr, "unresolved")

	t.Run("prompt failure", func(t *testing.T) {
		promptForValue = func(string) (string, error) { return "", errors.New("interrupt") }
		_, _, err := execute(t, "", "resolve", template, "-i")
		assert.ErrorContains(t, err, "interrupt")
	})

	t.Run("needs a file", func(t *testing.T) {
		isTerminal = func(io.Reader) bool { return false }
		_, _, err := execute(t, "${a}", "resolve", "-i")
		assert.ErrorContains(t, err, "needs a file argument")
	})
}
