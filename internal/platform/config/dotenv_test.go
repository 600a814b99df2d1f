package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("LANGID_DOTENV_A=from-file\nLANGID_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LANGID_DOTENV_B", "from-env")
	t.Setenv("LANGID_DOTENV_A", "")
	os.Unsetenv("LANGID_DOTENV_A")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	c := New().Prefix("LANGID_DOTENV_")
	if got := c.MayString("A", ""); got != "from-file" {
		t.Fatalf("A = %q", got)
	}
	if got := c.MayString("B", ""); got != "from-env" {
		t.Fatalf("B = %q, set variables must win", got)
	}

	bad := filepath.Join(dir, "bad.env")
	if err := os.WriteFile(bad, []byte("BAD-KEY=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(bad); err == nil {
		t.Fatalf("malformed file should fail")
	}
}
