package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// EditFile opens path in the editor, creating it with seed first when it
// does not exist. It reports whether the file changed.
func EditFile(editorCmd, path, seed string) (changed bool, err error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return false, fmt.Errorf("empty editor command")
	}

	before, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
			return false, fmt.Errorf("writing %s: %w", path, err)
		}
		before = []byte(seed)
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	cmdArgs := append(parts[1:], path)
	cmd := exec.Command(parts[0], cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("editor exited with error: %w", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading edited file: %w", err)
	}
	return strings.TrimSpace(string(after)) != strings.TrimSpace(string(before)), nil
}
