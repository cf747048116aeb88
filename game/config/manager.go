package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/arcade/game/engine"
	"github.com/wricardo/mcp-training/arcade/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles settings preset loading and caching
type Manager struct {
	configDir      string
	defaultSetting *engine.Settings
	configs        map[string]*engine.Settings
	mu             sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.Settings),
	}
	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a preset by name. Names may carry the .json suffix.
func (m *Manager) LoadConfig(name string) (*engine.Settings, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if settings, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return settings, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if settings, exists := m.configs[name]; exists {
		return settings, nil
	}

	settings, err := engine.LoadSettings(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if name == "classic" {
				return m.builtinClassic(), nil
			}
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = settings
	return settings, nil
}

// ListConfigs returns information about all available presets
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seenClassic := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		settings, err := m.LoadConfig(name)
		if err != nil {
			log.WithError(err).WithField("config", name).Warn("skipping invalid config")
			continue
		}
		if name == "classic" {
			seenClassic = true
		}
		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        settings.Name,
			Description: settings.Description,
		})
	}

	if !seenClassic {
		classic := engine.DefaultSettings()
		configs = append(configs, &service.ConfigInfo{
			ConfigID:    "classic",
			Name:        classic.Name,
			Description: classic.Description,
		})
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *engine.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultSetting
}

// SetDefault sets the default preset by name
func (m *Manager) SetDefault(name string) error {
	settings, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultSetting = settings
	return nil
}

// RefreshCache drops cached presets so edited files are read again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.Settings)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// Count returns the number of cached presets
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig uses classic.json when it exists and is valid, else the
// built-in classic rules.
func (m *Manager) loadDefaultConfig() {
	settings, err := m.LoadConfig("classic")
	if err != nil {
		log.WithError(err).Warn("classic config unusable, using built-in rules")
		settings = m.builtinClassic()
	}

	m.mu.Lock()
	m.defaultSetting = settings
	m.mu.Unlock()
}

func (m *Manager) builtinClassic() *engine.Settings {
	classic := engine.DefaultSettings()
	return &classic
}

// SaveConfig validates and writes a preset to disk
func (m *Manager) SaveConfig(name string, settings *engine.Settings) error {
	if err := engine.ValidateSettings(settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad preset name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.configDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = settings
	m.mu.Unlock()
	return nil
}
