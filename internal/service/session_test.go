package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/darkroom/internal/adapter"
)

func TestSessionService_Reset(t *testing.T) {
	t.Setenv("DARKROOM_API_ACCESS_KEY", "")
	t.Setenv("UNSPLASH_ACCESS_KEY", "")

	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	historyDir := filepath.Join(tmp, "cache")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(historyDir, "darkroom.db"), []byte("x"), 0600); err != nil {
		t.Fatalf("write db: %v", err)
	}

	cfg := adapter.DefaultConfig()
	cfg.API.AccessKey = "secret"
	cfg.History.Dir = historyDir
	cfg.Search.InitialQuery = "cats"
	if err := adapter.SaveConfig(cfg, cfgPath); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	if err := NewSessionService(cfgPath).Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	loaded, err := adapter.LoadConfigFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if loaded.IsConfigured() {
		t.Fatalf("access key survived Reset")
	}
	if loaded.Search.InitialQuery != "cats" {
		t.Fatalf("other settings lost: initial query = %q", loaded.Search.InitialQuery)
	}
	if _, err := os.Stat(historyDir); !os.IsNotExist(err) {
		t.Fatalf("history dir still present: %v", err)
	}
}
