// Package integration provides CLI integration tests for pantry.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// pantryBin is the path to the built pantry binary.
	pantryBin string
	// buildErr captures any build error from TestMain.
	buildErr error
)

// BuildError wraps a build error with its output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up to go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated environment with its own config directory,
// data directory, and working directory for manifest files.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DataDir   string
	WorkDir   string
}

// NewTestEnv creates an isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build pantry: %v", buildErr)
	}
	if pantryBin == "" {
		t.Fatal("pantry binary not built")
	}

	tempDir := t.TempDir()
	env := &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
		WorkDir:   filepath.Join(tempDir, "work"),
	}

	if err := os.MkdirAll(env.ConfigDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.MkdirAll(env.WorkDir, 0o755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}

	configContent := "backend: sqlite\ndata_dir: " + env.DataDir + "\n"
	if err := os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return env
}

// WriteManifest writes a manifest file into the work directory and
// returns its path.
func (e *TestEnv) WriteManifest(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.WorkDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

// CmdResult holds the result of a pantry command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunPantry executes the pantry CLI with the given arguments from the
// work directory.
func (e *TestEnv) RunPantry(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(pantryBin, allArgs...)
	cmd.Dir = e.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run pantry: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunPantry executes the pantry CLI and fails the test on a
// non-zero exit code.
func (e *TestEnv) MustRunPantry(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunPantry(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("pantry %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}
