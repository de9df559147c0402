package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dataDir    string
	contentDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	for _, k := range []string{"CHARKEEP_MODE", "CHARKEEP_DATA_DIR", "CHARKEEP_CONTENT_DIR",
		"CHARKEEP_REMOTE_URL", "CHARKEEP_LOCAL_BACKEND", "CHARKEEP_POOL_SIZE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "share"))

	env := &cliEnv{dataDir: t.TempDir(), contentDir: t.TempDir()}
	require.NoError(t, os.MkdirAll(filepath.Join(env.contentDir, "spells"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.contentDir, "spells", "fireball.json"),
		[]byte(`{"name":"Fireball","level":3}`), 0o644))
	return env
}

// run executes the CLI and returns stdout.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := append([]string{"charkeep",
		"--log-level", "error",
		"--data-dir", e.dataDir,
		"--content-dir", e.contentDir,
		// Nothing listens on port 1, so remote lookups fail fast.
		"--remote-url", "http://127.0.0.1:1/api",
	}, args...)
	err := app.Run(full)
	return stdout.String(), err
}

func TestCLI_SaveAndList(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, `{"name":"Garb (Tamta)","level":2}`, "characters", "save", "-")
	require.NoError(t, err)
	_, err = env.run(t, `{"name":"Garb","level":3}`, "characters", "save", "-")
	require.NoError(t, err)

	out, err := env.run(t, "", "characters", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Garb (Tamta)","level":3}]`, out)

	out, err = env.run(t, "", "characters", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Garb (Tamta)")
}

func TestCLI_ExportImport(t *testing.T) {
	env := newCLIEnv(t)
	outDir := t.TempDir()

	_, err := env.run(t, `{"name":"Nyx"}`, "characters", "save", "-")
	require.NoError(t, err)
	_, err = env.run(t, "", "characters", "export", "--out", outDir, "--filename", "backup.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "backup.json"))
	require.NoError(t, err)
	var exported struct {
		Version    string            `json:"version"`
		Characters []json.RawMessage `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, "1.0", exported.Version)
	assert.Len(t, exported.Characters, 1)

	// Import into a fresh data dir.
	env.dataDir = t.TempDir()
	_, err = env.run(t, "", "characters", "import", filepath.Join(outDir, "backup.json"))
	require.NoError(t, err)

	out, err := env.run(t, "", "characters", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Nyx"}]`, out)
}

func TestCLI_ImportRejectsBadFormat(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Garb"}`), 0o644))

	_, err := env.run(t, "", "characters", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected array of characters")
}

func TestCLI_Lookup(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "lookup", "spells", "Fireball")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Fireball","level":3}`, out)

	_, err = env.run(t, "", "lookup", "spells", "Wish")
	assert.Error(t, err)

	_, err = env.run(t, "", "lookup", "feats", "Alert")
	assert.Error(t, err)
}

func TestCLI_Index(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "index", "--category", "spells", "--json")
	require.NoError(t, err)

	var idx map[string][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &idx))
	require.Len(t, idx["spells"], 1)
	assert.Equal(t, "Fireball", idx["spells"][0]["name"])
	assert.Equal(t, "auto-detected", idx["spells"][0]["source"])
}

func TestCLI_Info(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "info")
	require.NoError(t, err)

	var info struct {
		Storage struct {
			Platform string `json:"platform"`
			Location string `json:"location"`
			Exists   bool   `json:"exists"`
		} `json:"storage"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "desktop", info.Storage.Platform)
	assert.Equal(t, filepath.Join(env.dataDir, "characters.json"), info.Storage.Location)
	assert.False(t, info.Storage.Exists)
}
