package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkchan/HB-markov-twitter/pkg/publish"
)

// testEnv holds the files backing one CLI run.
type testEnv struct {
	dir        string
	configPath string
	ledgerPath string
}

// setupTestEnv writes a config file into a temporary directory that logs only
// errors and keeps the ledger inside that directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.json"),
		ledgerPath: filepath.Join(dir, "data", "ledger.db"),
	}

	config := DefaultConfig()
	config.LogLevel = "error"
	config.Markov.Corpus = nil
	config.Publish.LedgerPath = env.ledgerPath

	data, err := json.Marshal(config)
	if err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(env.configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

// corpus writes text to a file in the environment and returns its path.
func (e *testEnv) corpus(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the CLI with the environment's config and returns its output.
func (e *testEnv) run(args ...string) (string, error) {
	return e.runApp(&app{newPublisher: publish.New, confirm: confirm}, args...)
}

// runApp is run with the publisher and confirmation prompt taken from a.
func (e *testEnv) runApp(a *app, args ...string) (string, error) {
	cmd := newAppCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}
