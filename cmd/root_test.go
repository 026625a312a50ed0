package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envwrangler/envwrangler/internal/report"
)

// isolate keeps the user's config file and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, e := range os.Environ() {
		if name, _, _ := strings.Cut(e, "="); strings.HasPrefix(name, "ENVWRANGLER_") {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
	return dir
}

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestUsageError(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{{}, {"only-one.env"}} {
		stdout, _, err := execute(t, args...)
		require.ErrorIs(t, err, ErrUsage)
		assert.Equal(t, usageText, stdout)
	}
}

func TestOneDifference(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, ".env.a", "FOO=1\nBAR=2\n")
	b := writeEnv(t, dir, ".env.b", "FOO=1\nBAR=3\n")

	stdout, _, err := execute(t, a, b, "local", "staging", "--color", "never")
	require.NoError(t, err)

	want := "🔍 Found 1 difference(s) between local and staging:\n" +
		strings.Repeat("-", 60) + "\n" +
		"BAR:\n" +
		"  local: 2\n" +
		"  staging: 3\n" +
		"\n"
	assert.Equal(t, want, stdout)
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, ".env.a", "# comment\n\nFOO=1\n")
	b := writeEnv(t, dir, ".env.b", "FOO=1\n")

	stdout, _, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Equal(t, "🎉 No differences! env1 and env2 are identical twins.\n", stdout)
}

func TestMissingSecondFile(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, ".env.a", "FOO=1\n")
	missing := filepath.Join(dir, ".env.missing")

	stdout, _, err := execute(t, a, missing)
	require.NoError(t, err)

	want := "⚠️  File not found: " + missing + "\n" +
		"🔍 Found 1 difference(s) between env1 and env2:\n" +
		strings.Repeat("-", 60) + "\n" +
		"FOO:\n" +
		"  env1: 1\n" +
		"  env2: <MISSING>\n" +
		"\n"
	assert.Equal(t, want, stdout)
}

func TestBothMissing(t *testing.T) {
	dir := isolate(t)
	a := filepath.Join(dir, "a.env")
	b := filepath.Join(dir, "b.env")

	stdout, _, err := execute(t, a, b)
	require.NoError(t, err)

	want := "⚠️  File not found: " + a + "\n" +
		"⚠️  File not found: " + b + "\n" +
		"🤷 Both files are empty or missing. Nothing to wrangle!\n"
	assert.Equal(t, want, stdout)
}

func TestBothEmpty(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "# nothing here\n")
	b := writeEnv(t, dir, "b.env", "")

	stdout, _, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Equal(t, "🤷 Both files are empty or missing. Nothing to wrangle!\n", stdout)
}

func TestValueWithEquals(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "KEY=a=b=c\n")
	b := writeEnv(t, dir, "b.env", "KEY=a\n")

	stdout, _, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "  env1: a=b=c\n")
	assert.Contains(t, stdout, "  env2: a\n")
}

func TestLiteralMissingMarkerIsReported(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "FOO=<MISSING>\n")
	b := writeEnv(t, dir, "b.env", "BAR=1\n")

	stdout, _, err := execute(t, a, b, "--format", "json")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Equal(t, 2, doc.Count)
	foo := doc.Differences[1]
	assert.Equal(t, "FOO", foo.Key)
	require.NotNil(t, foo.Left)
	assert.Equal(t, "<MISSING>", *foo.Left)
	assert.Nil(t, foo.Right)
}

func TestFilterFlag(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "DB_HOST=localhost\nPORT=8080\nOLD=1\n")
	b := writeEnv(t, dir, "b.env", "DB_HOST=db\nPORT=80\n")

	stdout, _, err := execute(t, a, b, "--filter", `Prefix("DB_") || Removed()`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 difference(s)")
	assert.Contains(t, stdout, "DB_HOST:")
	assert.Contains(t, stdout, "OLD:")
	assert.NotContains(t, stdout, "PORT:")

	stdout, _, err = execute(t, a, b, "-f", "None()")
	require.NoError(t, err)
	assert.Contains(t, stdout, "identical twins")

	_, _, err = execute(t, a, b, "-f", "Key ==")
	assert.Error(t, err)
}

func TestStructuredFormatsKeepWarningsOnStderr(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "FOO=1\n")
	missing := filepath.Join(dir, "missing.env")

	stdout, stderr, err := execute(t, a, missing, "local", "prod", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "File not found: "+missing)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "local", doc.LeftLabel)
	assert.Equal(t, "prod", doc.RightLabel)
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, "removed", doc.Differences[0].Change)
}

func TestInvalidFlags(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "FOO=1\n")

	_, _, err := execute(t, a, a, "--format", "xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)

	_, _, err = execute(t, a, a, "--color", "sometimes")
	assert.Error(t, err)

	_, _, err = execute(t, a, a, "--config", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLabelPrecedence(t *testing.T) {
	dir := isolate(t)
	a := writeEnv(t, dir, "a.env", "FOO=1\n")
	b := writeEnv(t, dir, "b.env", "FOO=2\n")
	cfg := writeEnv(t, dir, "cfg.yaml", "left-label: from-config\nright-label: also-config\n")

	stdout, _, err := execute(t, a, b, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "between from-config and also-config:")

	t.Setenv("ENVWRANGLER_RIGHT_LABEL", "from-env")
	stdout, _, err = execute(t, a, b, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "between from-config and from-env:")

	stdout, _, err = execute(t, a, b, "--config", cfg, "--left-label", "from-flag")
	require.NoError(t, err)
	assert.Contains(t, stdout, "between from-flag and from-env:")

	stdout, _, err = execute(t, a, b, "positional", "--config", cfg, "--left-label", "from-flag")
	require.NoError(t, err)
	assert.Contains(t, stdout, "between positional and from-env:")
}

func TestDefaultConfigFileInHome(t *testing.T) {
	dir := isolate(t)
	writeEnv(t, dir, ".envwrangler.yaml", "format: yaml\n")
	a := writeEnv(t, dir, "a.env", "FOO=1\n")
	b := writeEnv(t, dir, "b.env", "FOO=2\n")

	stdout, _, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "leftLabel: env1")
	assert.Contains(t, stdout, "change: modified")
}

func TestCompletionFlag(t *testing.T) {
	isolate(t)
	for _, shell := range completionShells {
		stdout, _, err := execute(t, "--completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, stdout, "envwrangler", shell)
	}

	_, _, err := execute(t, "--completion", "tcsh")
	assert.ErrorContains(t, err, "unsupported shell")
}

func TestPathNamedCompletion(t *testing.T) {
	dir := isolate(t)
	writeEnv(t, dir, "completion", "FOO=1\n")
	writeEnv(t, dir, "b.env", "FOO=2\n")
	t.Chdir(dir)

	stdout, _, err := execute(t, "completion", "b.env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 1 difference(s) between env1 and env2:")
	assert.Contains(t, stdout, "  env1: 1\n  env2: 2\n")
}

// resetLogger restores the silent global logger after a test enables debug mode.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		log.Logger = zerolog.Nop()
	})
}

func TestDebugLogsToStderr(t *testing.T) {
	dir := isolate(t)
	resetLogger(t)
	a := writeEnv(t, dir, "a.env", "FOO=1\n")
	b := writeEnv(t, dir, "b.env", "FOO=2\n")

	stdout, stderr, err := execute(t, "--debug", a, b)
	require.NoError(t, err)
	assert.Contains(t, stderr, "DBG")
	assert.Contains(t, stderr, "Parsed source")
	assert.Contains(t, stderr, `"FOO"`)
	assert.Contains(t, stderr, "Compared sources")
	assert.NotContains(t, stdout, "DBG")
}

func TestNoDebugKeepsStderrQuiet(t *testing.T) {
	dir := isolate(t)
	resetLogger(t)
	a := writeEnv(t, dir, "a.env", "FOO=1\n")
	b := writeEnv(t, dir, "b.env", "FOO=2\n")

	_, stderr, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestSetupDebugLogFile(t *testing.T) {
	t.Chdir(t.TempDir())
	resetLogger(t)
	require.NoError(t, os.WriteFile("debug.log", []byte("stale\n"), 0o600))

	closeLog, err := setupDebugLog(io.Discard, true, true, true)
	require.NoError(t, err)
	log.Debug().Msg("first run")
	closeLog()

	content, err := os.ReadFile("debug.log")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
	assert.Contains(t, string(content), "first run")

	closeLog, err = setupDebugLog(io.Discard, true, false, true)
	require.NoError(t, err)
	log.Debug().Msg("second run")
	closeLog()

	content, err = os.ReadFile("debug.log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

func TestSetupDebugLogDisabled(t *testing.T) {
	t.Chdir(t.TempDir())
	resetLogger(t)

	var stderr bytes.Buffer
	closeLog, err := setupDebugLog(&stderr, false, true, true)
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	closeLog()

	assert.Equal(t, zerolog.Disabled, log.Logger.GetLevel())
	assert.Empty(t, stderr.String())
	assert.NoFileExists(t, "debug.log")
}

func TestEnvFileCompletion(t *testing.T) {
	dir := isolate(t)
	writeEnv(t, dir, ".env.local", "")
	writeEnv(t, dir, "prod.env", "")
	writeEnv(t, dir, "README.md", "")

	got, directive := envFileCompletion(nil, nil, dir+string(filepath.Separator))
	assert.ElementsMatch(t, []string{filepath.Join(dir, ".env.local"), filepath.Join(dir, "prod.env")}, got)
	assert.NotZero(t, directive)

	_, directive = envFileCompletion(nil, []string{"a", "b"}, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
