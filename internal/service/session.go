package service

import (
	"fmt"

	"github.com/mmcdole/darkroom/internal/adapter"
)

// SessionService manages stored credentials
type SessionService struct {
	configPath string
}

// NewSessionService creates a SessionService for the config file at path
// (the default location when empty)
func NewSessionService(configPath string) *SessionService {
	return &SessionService{configPath: configPath}
}

// Reset forgets the stored access key and removes the history cache,
// preserving other settings
func (s *SessionService) Reset() error {
	cfg, err := adapter.LoadConfigFrom(s.configPath)
	if err != nil {
		return err
	}

	historyDir := cfg.History.Dir
	cfg.API.AccessKey = ""

	if err := adapter.SaveConfig(cfg, s.configPath); err != nil {
		return fmt.Errorf("failed to clear access key: %w", err)
	}

	if err := adapter.ClearCache(historyDir); err != nil {
		return err
	}

	return nil
}
