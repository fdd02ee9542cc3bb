package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const foxText = "The quick brown fox. The quick brown fox jumps over the lazy dog. A fox is quick."

type cliTestEnv struct {
	baseDir       string
	stateDir      string
	configPath    string
	docPath       string
	stopWordsPath string
}

func setupCLITestEnv(t *testing.T, extraConfig string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SALIENCE_LOG_LEVEL", "error")
	t.Setenv("SALIENCE_API_TOKEN", "")

	env := &cliTestEnv{
		baseDir:       base,
		stateDir:      filepath.Join(base, "state"),
		configPath:    filepath.Join(base, "config.toml"),
		docPath:       filepath.Join(base, "fox.txt"),
		stopWordsPath: filepath.Join(base, "stop.txt"),
	}

	content := fmt.Sprintf("[paths]\nstate_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n%s",
		env.stateDir,
		filepath.Join(base, "logs"),
		extraConfig,
	)
	writeFile(t, env.configPath, content)
	writeFile(t, env.docPath, foxText)
	writeFile(t, env.stopWordsPath, "the\na\nis\nover\n")
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
