package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const items = `
[[items]]
id = "go-basics"
title = "Go basics"
tags = ["go"]

[[items]]
id = "rust-basics"
title = "Rust basics"
tags = ["rust"]

[[items]]
id = "go-testing"
title = "Go testing"
tags = ["go", "testing"]
`

const cfgFile = `
[collection]
sort_fields = ["title"]
columns = ["title", "tags"]

[[filters]]
id = "tag"
field = "tags"
op = "has"
values = ["go", "rust"]

[source]
paths = ["items.toml"]
`

func setup(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.toml"), []byte(items), 0644))
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(cfgFile), 0644))
	return cfg
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New("v1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func titles(out string) []string {
	var got []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && (fields[0] == "Go" || fields[0] == "Rust") {
			got = append(got, fields[0]+" "+fields[1])
		}
	}
	return got
}

func TestListAll(t *testing.T) {
	cfg := setup(t)
	out, err := run(t, "list", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "3 of 3 items")
	assert.Contains(t, out, "TITLE")
	assert.Equal(t, []string{"Go basics", "Rust basics", "Go testing"}, titles(out))
}

func TestListQuery(t *testing.T) {
	cfg := setup(t)
	out, err := run(t, "list", "--config", cfg, "--filter", "tag=go", "--sort", "title", "--desc")
	require.NoError(t, err)

	assert.Contains(t, out, "2 of 3 items - tag=go, sorted by title desc")
	assert.Equal(t, []string{"Go testing", "Go basics"}, titles(out))
}

func TestListSearch(t *testing.T) {
	cfg := setup(t)
	out, err := run(t, "list", "--config", cfg, "--search", "RUST")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust basics"}, titles(out))
}

func TestListSourceOverride(t *testing.T) {
	cfg := setup(t)
	other := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("items:\n  - id: one\n    title: Go only\n"), 0644))

	out, err := run(t, "list", "--config", cfg, "--source", other)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 items")
	assert.Equal(t, []string{"Go only"}, titles(out))
}

func TestListErrors(t *testing.T) {
	cfg := setup(t)

	_, err := run(t, "list", "--config", cfg, "--sort", "titel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "title"`)

	_, err = run(t, "list", "--config", cfg, "--filter", "tga=go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "tag"`)

	_, err = run(t, "list", "--config", cfg, "--filter", "tag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want id=value")
}

func TestRootNeedsSources(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("version = 1\n"), 0644))
	t.Chdir(dir)

	_, err := run(t, "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no item sources")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "collectionview v1.2.3\n", out)
}
