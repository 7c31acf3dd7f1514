package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultPriority != "medium" {
		t.Fatalf("expected medium default priority, got %q", cfg.DefaultPriority)
	}
	if len(cfg.Team) != 3 {
		t.Fatalf("expected 3 roster members, got %d", len(cfg.Team))
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.DefaultPriority != "medium" {
		t.Fatal("expected defaults for missing file")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
default_assignee: JK
default_priority: high
team:
  - name: Solo Dev
    initials: SD
    role: Everything
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultAssignee != "JK" || cfg.DefaultPriority != "high" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Team) != 1 || cfg.Team[0].Initials != "SD" {
		t.Fatalf("team not replaced: %+v", cfg.Team)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("team: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMemberByInitials(t *testing.T) {
	cfg := DefaultConfig()
	m := cfg.MemberByInitials("JK")
	if m == nil || m.Name != "Jonas Keller" {
		t.Fatalf("expected Jonas Keller, got %+v", m)
	}
	if cfg.MemberByInitials("ZZ") != nil {
		t.Fatal("expected nil for unknown initials")
	}
}
