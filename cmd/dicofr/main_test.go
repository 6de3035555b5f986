package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicofr.yaml")
	if err := os.WriteFile(path, []byte("db_path: from-file.db\nlisten: \":9000\"\nwords_path: words.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(options{configPath: path, dbPath: "flag.db"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Errorf("db: got %q", cfg.DBPath)
	}
	if cfg.Listen != ":9000" || cfg.WordsPath != "words.json" {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestResolveConfig_NoFile(t *testing.T) {
	cfg, err := resolveConfig(options{listen: ":1234"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":1234" {
		t.Errorf("listen: %q", cfg.Listen)
	}
	if _, err := resolveConfig(options{configPath: "/nonexistent/dicofr.yaml"}); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.html")
	os.WriteFile(path, []byte(`<h2 class="AdresseDefinition">x</h2>`), 0o644)
	got, err := readInput(path)
	if err != nil || got != `<h2 class="AdresseDefinition">x</h2>` {
		t.Errorf("readInput: %q %v", got, err)
	}
}
