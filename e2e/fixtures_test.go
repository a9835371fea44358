//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item is one entry written into a fixture source file
type Item struct {
	ID          string
	Title       string
	Description string
	Tags        []string
}

// DefaultItems is the collection most tests start from
var DefaultItems = []Item{
	{ID: "go-basics", Title: "Go basics", Description: "A syntax tour", Tags: []string{"go"}},
	{ID: "rust-basics", Title: "Rust basics", Tags: []string{"rust"}},
	{ID: "sql-joins", Title: "SQL joins", Tags: []string{"sql"}},
	{ID: "go-testing", Title: "Go testing", Tags: []string{"go", "testing"}},
}

// CreateTestWorkspace creates the temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	var err error
	tf.workspace, err = os.MkdirTemp("", "collectionview-e2e-*")
	return tf.workspace, err
}

// WriteItems writes items as a TOML source file in the workspace
func (tf *TUITestFramework) WriteItems(name string, items []Item) (string, error) {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("[[items]]\n")
		fmt.Fprintf(&b, "id = %q\n", it.ID)
		fmt.Fprintf(&b, "title = %q\n", it.Title)
		if it.Description != "" {
			fmt.Fprintf(&b, "description = %q\n", it.Description)
		}
		if len(it.Tags) > 0 {
			quoted := make([]string, len(it.Tags))
			for i, t := range it.Tags {
				quoted[i] = fmt.Sprintf("%q", t)
			}
			fmt.Fprintf(&b, "tags = [%s]\n", strings.Join(quoted, ", "))
		}
		b.WriteString("\n")
	}

	path := filepath.Join(tf.workspace, name)
	return path, os.WriteFile(path, []byte(b.String()), 0644)
}

// WriteConfig writes the project-local config file in the workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	return os.WriteFile(filepath.Join(tf.workspace, ".collectionview.toml"), []byte(content), 0644)
}

// ReadFile returns a workspace file's content
func (tf *TUITestFramework) ReadFile(name string) string {
	tf.t.Helper()
	data, err := os.ReadFile(filepath.Join(tf.workspace, name))
	if err != nil {
		tf.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
