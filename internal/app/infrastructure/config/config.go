package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrInvalid marks an update rejected by validation.
var ErrInvalid = errors.New("invalid config")

type Manager struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// New loads the config file, creating it with defaults when missing, and then
// applies CHATKEYWORDS_* environment overrides.
func New(path string) (*Manager, error) {
	if path == "" {
		return nil, errors.New("no config path provided")
	}
	m := &Manager{path: path}

	cfg, err := read(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
		if err := m.write(cfg); err != nil {
			return nil, fmt.Errorf("write config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	m.cfg = cfg
	return m, nil
}

// Load reads the config without ever writing it: a missing file yields the
// defaults. Environment overrides apply as in New.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func finish(cfg *Config) error {
	if err := applyEnv(cfg); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	if err := validate(cfg); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

// Update applies modify to a copy; the copy replaces the current config only
// if it validates and is saved. Readers holding the old pointer are unaffected.
func (m *Manager) Update(modify func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := *m.cfg
	if m.cfg.Proxy != nil {
		p := *m.cfg.Proxy
		next.Proxy = &p
	}
	modify(&next)

	if err := validate(&next); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := m.write(&next); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	m.cfg = &next
	return nil
}

func read(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return cfg, nil
}

func (m *Manager) write(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(m.path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}
