package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()

	want := filepath.Join(root, ProjectConfigName)
	if err := os.WriteFile(want, []byte("policy: cascade\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Create a subdirectory
	sub := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	// Should find the config from a subdirectory
	found, ok := findProjectConfig(sub)
	if !ok {
		t.Fatal("expected to find project config")
	}
	if found != want {
		t.Errorf("expected %q, got %q", want, found)
	}
}

func TestFindProjectConfig_NearestWins(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{root, sub} {
		if err := os.WriteFile(filepath.Join(dir, ProjectConfigName), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	found, ok := findProjectConfig(sub)
	if !ok || found != filepath.Join(sub, ProjectConfigName) {
		t.Errorf("expected nearest config in %s, got %q (ok=%v)", sub, found, ok)
	}
}

func TestFindProjectConfig_StopsAtHome(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	work := filepath.Join(home, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	// Above home, must not be picked up
	if err := os.WriteFile(filepath.Join(root, ProjectConfigName), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)

	if found, ok := findProjectConfig(work); ok {
		t.Errorf("walk should stop at home, found %q", found)
	}
}

func TestFindProjectConfig_IgnoresDirectory(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	if err := os.MkdirAll(filepath.Join(home, ProjectConfigName), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)

	if _, ok := findProjectConfig(home); ok {
		t.Error("a directory named like the config must be ignored")
	}
}
