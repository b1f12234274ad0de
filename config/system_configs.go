package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8080"
	defaultMongoDatabase    = "monday_sippin"
	defaultVisualizeTimeout = 15 * time.Second
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

func LoadConfigs() (*SystemConfigs, error) {
	godotenv.Load()

	rawJson := os.Getenv("config")
	if rawJson == "" {
		return nil, fmt.Errorf("environment variable 'config' is empty or not set")
	}

	envCfg, err := ParseConfig([]byte(rawJson))
	if err != nil {
		return nil, err
	}

	return &SystemConfigs{
		Config: envCfg,
	}, nil
}

// ParseConfig decodes the JSON config blob and fills defaults.
func ParseConfig(raw []byte) (*model.EnvConfig, error) {
	var envCfg model.EnvConfig
	if err := json.Unmarshal(raw, &envCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if envCfg.Port == "" {
		envCfg.Port = defaultPort
	}
	if envCfg.MongoDatabase == "" {
		envCfg.MongoDatabase = defaultMongoDatabase
	}
	return &envCfg, nil
}

// VisualizeTimeout is the hard limit on one call to the AI function.
func VisualizeTimeout(cfg *model.EnvConfig) time.Duration {
	if cfg == nil || cfg.VisualizeTimeoutSeconds <= 0 {
		return defaultVisualizeTimeout
	}
	return time.Duration(cfg.VisualizeTimeoutSeconds) * time.Second
}

type ConfigManager struct {
	value atomic.Value
}

func NewConfigManager(initial *model.EnvConfig) *ConfigManager {
	cm := &ConfigManager{}
	cm.value.Store(initial)
	return cm
}

func (cm *ConfigManager) GetConfig() *model.EnvConfig {
	return cm.value.Load().(*model.EnvConfig)
}

func (cm *ConfigManager) UpdateConfig(newCfg *model.EnvConfig) {
	cm.value.Store(newCfg)
}
