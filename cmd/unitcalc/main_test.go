package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "", "parse", "2 Cd 7 s^-1", "5 km")
	require.NoError(t, err)
	assert.Equal(t, "14 s^-1 Cd\n5000 m\n", out)

	out, err = run(t, "", "--rule", "N = kg m s^-2", "--format", "latex-frac", "parse", "N")
	require.NoError(t, err)
	assert.Equal(t, `\frac{1 \text{ m} \text{ kg}}{\text{s}^{2}}`+"\n", out)

	out, err = run(t, "", "--rule", "N = kg m s^-2", "--reduce", "parse", "3 kg m s^-2")
	require.NoError(t, err)
	assert.Equal(t, "3 N\n", out)

	out, err = run(t, "", "--order", "kg,s", "parse", "kg m s^-2")
	require.NoError(t, err)
	assert.Equal(t, "1 kg s^-2 m\n", out)

	_, err = run(t, "", "parse", "5*kg^2")
	assert.Error(t, err)
	_, err = run(t, "", "--format", "html", "parse", "m")
	assert.Error(t, err)
}

func TestParseCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "si.rules", "N = kg m s^-2\nJ = N m\n")
	cfg := writeFile(t, dir, "unitcalc.yaml", "rule_files: [si.rules]\nformat:\n  kind: latex-inline\n  reduce: true\n")

	out, err := run(t, "", "--config", cfg, "parse", "2 J")
	require.NoError(t, err)
	assert.Equal(t, `$2 \text{ J}$`+"\n", out)

	out, err = run(t, "", "--config", cfg, "--format", "plain", "parse", "2 J")
	require.NoError(t, err)
	assert.Equal(t, "2 J\n", out, "flags override the file")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rules", "# si\nN = kg m s^-2\nJ = N m\n")
	bad := writeFile(t, dir, "bad.rules", "N = kg m s^-2\n\nW = J / s\n")

	out, err := run(t, "", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.rules: OK (2 rules)")

	out, err = run(t, "", "check", good, bad)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "good.rules: OK")
	assert.Contains(t, out, "bad.rules: FAIL")
	assert.Contains(t, out, "line 3")
}

func TestCheckCommand_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.rules", "N = kg m s^-2\n")

	cmd := rootCmd()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{"check", "--watch", path})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "OK (1 rules)")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("N = kg m s^-2\nX = nope\n"), 0o600))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "FAIL")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestReplCommand(t *testing.T) {
	script := strings.Join([]string{
		"# comment",
		"N = kg m s^-2",
		"0.5 N / m",
		"!kg = m",
		"bogus",
		":reset",
		"N",
		":quit",
		"m",
	}, "\n")

	out, err := run(t, script, "repl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "N = 1 m kg s^-2", lines[0])
	assert.Equal(t, "0.5 kg s^-2", lines[1])
	assert.Contains(t, lines[2], "you may not redefine 'kg'")
	assert.Contains(t, lines[3], "unknown symbol 'bogus'")
	assert.Contains(t, lines[4], "unknown symbol 'N'")
	assert.NotContains(t, out, "> ", "no prompt without a terminal")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "", "--rule", "!Hz = s^-1", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Regexp(t, `kg\s+base\s+true\s+1 kg`, out)
	assert.Regexp(t, `g\s+builtin\s+true\s+0.001 kg`, out)
	assert.Regexp(t, `Hz\s+dynamic\s+true\s+1 s\^-1`, out)

	out, err = run(t, "", "rules", "--prefixes")
	require.NoError(t, err)
	assert.Regexp(t, `k\s+1000`, out)
	assert.Equal(t, 20, strings.Count(out, "\n"), "header plus 19 prefixes")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "unitcalc version unitlib-0.2b2\n", out)
}
