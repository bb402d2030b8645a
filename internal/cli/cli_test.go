package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/surprise/config"
	"github.com/phanxgames/surprise/content"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateDefault(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	out, err := execute(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "ok: 5 boxes, 4 eggs, 3 tracks") {
		t.Errorf("output = %q", out)
	}
}

func TestValidateReportsBrokenContent(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scene, []byte("eggs:\n  - kind: dragon\n    message: m\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "surprise.yaml")
	if err := os.WriteFile(cfgPath, []byte("content: "+scene+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvPath, cfgPath)

	out, err := execute(t, "validate")
	if err == nil {
		t.Fatalf("broken scene accepted: %s", out)
	}
	if !strings.Contains(err.Error(), "dragon") {
		t.Errorf("error does not name the bad kind: %v", err)
	}
}

func TestConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))
	cfgPath := filepath.Join(t.TempDir(), "surprise.yaml")
	if err := os.WriteFile(cfgPath, []byte("audio:\n  backend: none\n  playlist: [/x.mp3]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", cfgPath, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "1 tracks, audio backend none") {
		t.Errorf("output = %q", out)
	}
}

func TestList(t *testing.T) {
	tbl, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := list(&out, tbl); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1+len(tbl.Boxes)+len(tbl.Eggs) {
		t.Fatalf("rows = %d\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "0  box") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(out.String(), "quiz") {
		t.Error("quiz payload not flagged")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("hola\nmundo", 40); got != "hola" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("cumpleaños feliz", 6); got != "cumpl…" {
		t.Errorf("firstLine = %q", got)
	}
}

func TestLoadScript(t *testing.T) {
	if sc, err := loadScript(""); sc != nil || err != nil {
		t.Fatalf("empty path: %v, %v", sc, err)
	}
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - action: click\n    x: 400\n    y: 300\n  - action: quit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := loadScript(path)
	if err != nil || sc == nil {
		t.Fatalf("loadScript: %v", err)
	}
	if _, err := loadScript(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file err = %v", err)
	}
}
