package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/config"
	"github.com/vanderheijden86/checktree/pkg/debug"
	"github.com/vanderheijden86/checktree/pkg/version"
)

// isolate keeps the test away from the developer's config files and forces
// the non-interactive path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv(config.PolicyEnvVar, "")
	t.Chdir(dir)

	origTerm, origOut, origAsk := isTerminal, isOutputTerminal, askPolicy
	isTerminal = func() bool { return false }
	isOutputTerminal = func() bool { return false }
	t.Cleanup(func() {
		isTerminal, isOutputTerminal, askPolicy = origTerm, origOut, origAsk
	})
	return dir
}

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPrintIndependentDefault(t *testing.T) {
	isolate(t)
	code, out, errOut := runArgs(t, "--print")
	if code != 0 {
		t.Fatalf("exit %d, stderr %s", code, errOut)
	}
	want := "[\n  \"auth\",\n  \"frontend\",\n  \"dashboard\",\n  \"settings\"\n]\n"
	if out != want {
		t.Errorf("stdout =\n%s\nwant\n%s", out, want)
	}
	if errOut != "" {
		t.Errorf("unexpected stderr %q", errOut)
	}
}

func TestPrintCascade(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs(t, "--print", "--policy", "cascade")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if out != "[\n  \"auth\",\n  \"frontend\"\n]\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestNonTerminalFallsBackToPrint(t *testing.T) {
	isolate(t)
	code, out, errOut := runArgs(t)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(errOut, "Warning:") {
		t.Errorf("expected a warning, got %q", errOut)
	}
	if !strings.HasPrefix(out, "[") {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestPrintFromTreeFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "release.txt")
	src := "docs\n[x] deploy\n  canary\n  rollout\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runArgs(t, "--print", "--tree", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "[\n  \"deploy\",\n  \"canary\",\n  \"rollout\"\n]\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestPrintEmptySelection(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("- name: a\n- name: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, _ := runArgs(t, "--print", "--tree", path)
	if out != "[]\n" {
		t.Errorf("stdout = %q, want []", out)
	}
}

func TestPrintMarkdown(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs(t, "--print", "--format", "markdown")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, s := range []string{"# checktree", "- [ ] backend", "  - [x] auth", "  - [x] settings", "4 of 7 selected"} {
		if !strings.Contains(out, s) {
			t.Errorf("markdown output missing %q:\n%s", s, out)
		}
	}
}

func TestMarkdownUsesDeclaredTitle(t *testing.T) {
	dir := isolate(t)
	titled := filepath.Join(dir, "release.yaml")
	if err := os.WriteFile(titled, []byte("title: Release plan\nitems:\n  - name: a\n    checked: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "chores.yaml")
	if err := os.WriteFile(plain, []byte("- name: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, out, _ := runArgs(t, "--print", "--format", "markdown", "--tree", titled)
	if !strings.HasPrefix(out, "# Release plan\n") {
		t.Errorf("declared title not used:\n%s", out)
	}
	_, out, _ = runArgs(t, "--print", "--format", "markdown", "--tree", plain)
	if !strings.HasPrefix(out, "# chores\n") {
		t.Errorf("file name not used as fallback title:\n%s", out)
	}
}

func TestDebugFlag(t *testing.T) {
	isolate(t)
	prev := debug.Enabled()
	t.Cleanup(func() {
		debug.SetEnabled(prev)
		debug.SetOutput(os.Stderr)
	})

	code, out, errOut := runArgs(t, "--print", "--debug")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(errOut, "[CHECKTREE_DEBUG]") {
		t.Errorf("expected debug lines on stderr, got %q", errOut)
	}
	if !strings.HasPrefix(out, "[\n") {
		t.Errorf("debug output leaked into stdout: %q", out)
	}
}

func TestPolicyOptions(t *testing.T) {
	opts := policyOptions()
	policies := checklist.Policies()
	if len(opts) != len(policies) {
		t.Fatalf("got %d options, want %d", len(opts), len(policies))
	}
	for i, p := range policies {
		if opts[i].Value != p.String() {
			t.Errorf("option %d value = %q, want %q", i, opts[i].Value, p)
		}
		if !strings.HasPrefix(strings.ToLower(opts[i].Key), p.String()) {
			t.Errorf("option %d label %q does not name %s", i, opts[i].Key, p)
		}
	}
}

func TestConfigFilePolicy(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, config.ProjectConfigName), []byte("policy: cascade\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, _ := runArgs(t, "--print")
	if out != "[\n  \"auth\",\n  \"frontend\"\n]\n" {
		t.Errorf("project config policy ignored, stdout = %q", out)
	}

	// Flags win over config files
	_, out, _ = runArgs(t, "--print", "--policy", "independent")
	if !strings.Contains(out, "dashboard") {
		t.Errorf("flag should override config, stdout = %q", out)
	}
}

func TestExplicitConfigPath(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  format: md\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, _ := runArgs(t, "--print", "--config", cfgPath)
	if !strings.Contains(out, "- [x] frontend") {
		t.Errorf("expected markdown from --config, got %q", out)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad policy", []string{"--print", "--policy", "sideways"}, "unknown policy"},
		{"bad format", []string{"--print", "--format", "xml"}, "unknown output format"},
		{"missing tree", []string{"--print", "--tree", "nope.yaml"}, "opening definition"},
		{"bad extension", []string{"--print", "--tree", "list.toml"}, "unsupported definition file"},
		{"ask without terminal", []string{"--print", "--policy", "ask"}, "needs a terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, out, errOut := runArgs(t, tt.args...)
			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if out != "" {
				t.Errorf("nothing should reach stdout on error, got %q", out)
			}
			if !strings.HasPrefix(errOut, "Error: ") || !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want Error: ...%s", errOut, tt.wantErr)
			}
		})
	}
}

func TestInvalidDefinitionReportsLocation(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("a\n    b\n  c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := runArgs(t, "--print", "--tree", path)
	if code != 1 || !strings.Contains(errOut, "bad.txt:3:") {
		t.Errorf("exit %d, stderr %q", code, errOut)
	}
}

func TestResolvePolicyAsk(t *testing.T) {
	isolate(t)
	askPolicy = func() (checklist.Policy, error) { return checklist.PolicyCascade, nil }

	cfg := config.DefaultConfig()
	cfg.Policy = config.PolicyAsk
	p, err := resolvePolicy(cfg, true)
	if err != nil || p != checklist.PolicyCascade {
		t.Errorf("resolvePolicy = %v, %v", p, err)
	}

	askPolicy = func() (checklist.Policy, error) { return checklist.PolicyIndependent, errors.New("aborted") }
	if _, err := resolvePolicy(cfg, true); err == nil || !strings.Contains(err.Error(), "choosing policy") {
		t.Errorf("expected wrapped prompt error, got %v", err)
	}
}

func TestVersionAndHelp(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs(t, "--version")
	if code != 0 || !strings.Contains(out, version.Version) {
		t.Errorf("--version: exit %d, out %q", code, out)
	}

	code, _, errOut := runArgs(t, "--help")
	if code != 0 || !strings.Contains(errOut, "Usage: checktree") {
		t.Errorf("--help: exit %d, stderr %q", code, errOut)
	}

	if code, _, _ := runArgs(t, "--no-such-flag"); code != 2 {
		t.Errorf("unknown flag exit = %d, want 2", code)
	}
}
