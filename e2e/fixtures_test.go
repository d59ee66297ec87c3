//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory for config, seed and log
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteSeed writes a seed file with the given titles into the workspace
func (tf *TUITestFramework) WriteSeed(titles ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	var b strings.Builder
	b.WriteString("suggestions:\n")
	for _, title := range titles {
		fmt.Fprintf(&b, "  - %q\n", title)
	}
	path := filepath.Join(tf.workspace, "seed.yaml")
	return path, os.WriteFile(path, []byte(b.String()), 0644)
}

// WriteConfig writes a static-backend config pointing at seed
func (tf *TUITestFramework) WriteConfig(seed string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	content := fmt.Sprintf(`[search]
backend = "static"
seed_file = %q
cache_size = 0

[ui]
width = 40
mouse = true
`, seed)
	path := filepath.Join(tf.workspace, "config.toml")
	return path, os.WriteFile(path, []byte(content), 0644)
}

// StartSuggest prepares a workspace with titles and starts the app
func (tf *TUITestFramework) StartSuggest(titles []string, args ...string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	seed, err := tf.WriteSeed(titles...)
	if err != nil {
		return err
	}
	cfg, err := tf.WriteConfig(seed)
	if err != nil {
		return err
	}
	base := []string{"--config", cfg, "--log-file", filepath.Join(tf.workspace, "suggest.log"), "run"}
	return tf.StartApp(append(base, args...)...)
}
