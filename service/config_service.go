package service

import (
	"fmt"

	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxVisualizeTimeoutSeconds = 60

type ConfigService interface {
	GetConfigManager() *config.ConfigManager
	GetRuntimeSettings() model.RuntimeSettings
	UpdateRuntimeSettings(patch model.RuntimeSettingsPatch) (model.RuntimeSettings, error)
}

type ConfigServiceImpl struct {
	configManager *config.ConfigManager
}

func NewConfigService(cfg *config.ConfigManager) ConfigService {
	return &ConfigServiceImpl{configManager: cfg}
}

func (s *ConfigServiceImpl) GetConfigManager() *config.ConfigManager {
	return s.configManager
}

func (s *ConfigServiceImpl) GetRuntimeSettings() model.RuntimeSettings {
	var out model.RuntimeSettings
	current := s.configManager.GetConfig()
	_ = copier.Copy(&out, current)
	out.VisualizeTimeoutSeconds = int(config.VisualizeTimeout(current).Seconds())
	return out
}

// UpdateRuntimeSettings swaps in a copy of the active config with patch
// applied. Readers holding the old pointer keep a consistent view.
func (s *ConfigServiceImpl) UpdateRuntimeSettings(patch model.RuntimeSettingsPatch) (model.RuntimeSettings, error) {
	if t := patch.VisualizeTimeoutSeconds; t != nil && (*t < 1 || *t > maxVisualizeTimeoutSeconds) {
		return model.RuntimeSettings{}, fmt.Errorf("visualizeTimeoutSeconds must be between 1 and %d", maxVisualizeTimeoutSeconds)
	}

	next := &model.EnvConfig{}
	if err := copier.CopyWithOption(next, s.configManager.GetConfig(), copier.Option{DeepCopy: true}); err != nil {
		return model.RuntimeSettings{}, err
	}

	if patch.PreferAI != nil {
		next.PreferAI = *patch.PreferAI
	}
	if patch.RateLimiter != nil {
		next.RateLimiter = *patch.RateLimiter
	}
	if patch.DebugMode != nil {
		next.DebugMode = *patch.DebugMode
		if next.DebugMode {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}
	if patch.VisualizeTimeoutSeconds != nil {
		next.VisualizeTimeoutSeconds = *patch.VisualizeTimeoutSeconds
	}

	s.configManager.UpdateConfig(next)
	log.Info().
		Bool("preferAi", next.PreferAI).
		Bool("rateLimiter", next.RateLimiter).
		Int("visualizeTimeoutSeconds", next.VisualizeTimeoutSeconds).
		Msg("Runtime settings updated")

	return s.GetRuntimeSettings(), nil
}
