package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Timeline.Limit != 50 {
		t.Errorf("expected default timeline limit 50, got %d", cfg.Timeline.Limit)
	}
	if cfg.KeepAliveMinutes != 25 {
		t.Errorf("expected default keep-alive 25, got %d", cfg.KeepAliveMinutes)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"schools": []map[string]any{
			{"subdomain": "gymba", "username": "parent1", "password": "pw"},
		},
		"timeline": map[string]any{"limit": 20},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Schools) != 1 || cfg.Schools[0].Subdomain != "gymba" {
		t.Errorf("unexpected schools: %+v", cfg.Schools)
	}
	if cfg.Timeline.Limit != 20 {
		t.Errorf("expected timeline limit 20, got %d", cfg.Timeline.Limit)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected fallback to defaults for invalid JSON, got: %v", err)
	}
	if cfg.Timeline.Limit != 50 {
		t.Errorf("expected default timeline limit, got %d", cfg.Timeline.Limit)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := DefaultConfig()
	original.Schools = []SchoolConfig{{Subdomain: "zsruzova", Username: "u", Password: "p"}}

	if err := Save(&original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials file must be 0600, got %04o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Schools) != 1 || loaded.Schools[0].Subdomain != "zsruzova" {
		t.Errorf("round trip lost schools: %+v", loaded.Schools)
	}
}

func TestMergeEnv_CommaSeparatedSubdomains(t *testing.T) {
	t.Setenv("EDUPAGE_SUBDOMAIN", "gymba, zsruzova")
	t.Setenv("EDUPAGE_USERNAME", "parent1")
	t.Setenv("EDUPAGE_PASSWORD", "pw")

	cfg := DefaultConfig()
	cfg.MergeEnv()

	if len(cfg.Schools) != 2 {
		t.Fatalf("expected 2 schools from env, got %d", len(cfg.Schools))
	}
	for i, want := range []string{"gymba", "zsruzova"} {
		s := cfg.Schools[i]
		if s.Subdomain != want || s.Username != "parent1" || s.Password != "pw" {
			t.Errorf("school %d: got %+v", i, s)
		}
	}
}

func TestMergeEnv_FileWins(t *testing.T) {
	t.Setenv("EDUPAGE_SUBDOMAIN", "gymba")
	t.Setenv("EDUPAGE_USERNAME", "env-user")
	t.Setenv("EDUPAGE_PASSWORD", "env-pw")

	cfg := DefaultConfig()
	cfg.Schools = []SchoolConfig{{Subdomain: "gymba", Username: "file-user", Password: "file-pw"}}
	cfg.MergeEnv()

	if len(cfg.Schools) != 1 {
		t.Fatalf("env must not duplicate a configured school, got %d entries", len(cfg.Schools))
	}
	if cfg.Schools[0].Username != "file-user" {
		t.Errorf("file credentials must win, got %q", cfg.Schools[0].Username)
	}
}

func TestMergeEnv_NoEnv(t *testing.T) {
	t.Setenv("EDUPAGE_SUBDOMAIN", "")
	cfg := DefaultConfig()
	cfg.MergeEnv()
	if len(cfg.Schools) != 0 {
		t.Errorf("no env must mean no schools, got %+v", cfg.Schools)
	}
}
