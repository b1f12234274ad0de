package service

import (
	"testing"

	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigService_RuntimeSettings(t *testing.T) {
	original := &model.EnvConfig{
		FunctionsUrl: "https://fn.example",
		AnonKey:      "anon",
		RateLimiter:  true,
	}
	cm := config.NewConfigManager(original)
	svc := NewConfigService(cm)

	got := svc.GetRuntimeSettings()
	assert.Equal(t, model.RuntimeSettings{RateLimiter: true, VisualizeTimeoutSeconds: 15}, got)

	preferAI := true
	timeout := 20
	got, err := svc.UpdateRuntimeSettings(model.RuntimeSettingsPatch{
		PreferAI:                &preferAI,
		VisualizeTimeoutSeconds: &timeout,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RuntimeSettings{PreferAI: true, RateLimiter: true, VisualizeTimeoutSeconds: 20}, got)

	active := cm.GetConfig()
	assert.NotSame(t, original, active)
	assert.Equal(t, "https://fn.example", active.FunctionsUrl)
	assert.Equal(t, "anon", active.AnonKey)
	assert.False(t, original.PreferAI)
}

func TestConfigService_RejectsTimeoutOutOfRange(t *testing.T) {
	cm := config.NewConfigManager(&model.EnvConfig{})
	svc := NewConfigService(cm)

	for _, seconds := range []int{0, 61} {
		s := seconds
		_, err := svc.UpdateRuntimeSettings(model.RuntimeSettingsPatch{VisualizeTimeoutSeconds: &s})
		assert.Error(t, err, "timeout %d", seconds)
	}
	assert.Equal(t, 0, cm.GetConfig().VisualizeTimeoutSeconds)
}
