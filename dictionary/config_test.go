package dictionary

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicofr.yaml")
	data := `
db_path: /var/lib/dicofr/history.db
words_path: dic.json
parser:
  max_senses: 5
upstream:
  timeout: 5s
  browser:
    enabled: true
search:
  limit: 20
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.defaults()

	if cfg.DBPath != "/var/lib/dicofr/history.db" || cfg.WordsPath != "dic.json" {
		t.Errorf("paths: %+v", cfg)
	}
	if cfg.Parser.MaxSenses != 5 || cfg.Search.Limit != 20 || cfg.Search.MinLen != 2 {
		t.Errorf("parser/search: %+v %+v", cfg.Parser, cfg.Search)
	}
	if cfg.Upstream.Timeout != 5*time.Second || !cfg.Upstream.Browser.Enabled {
		t.Errorf("upstream: %+v", cfg.Upstream)
	}
	if cfg.Listen != ":5328" {
		t.Errorf("listen default: %q", cfg.Listen)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("parser: [unclosed"), 0o644)
	if _, err := LoadConfigFile(bad); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
