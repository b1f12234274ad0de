package model

// RuntimeSettings are the EnvConfig fields an admin may change while the
// server runs. Connection strings and secrets are never exposed here.
type RuntimeSettings struct {
	PreferAI                bool `json:"preferAi"`
	RateLimiter             bool `json:"rateLimiter"`
	DebugMode               bool `json:"debug"`
	VisualizeTimeoutSeconds int  `json:"visualizeTimeoutSeconds"`
}

// RuntimeSettingsPatch carries only the keys present in the request body.
type RuntimeSettingsPatch struct {
	PreferAI                *bool `mapstructure:"preferAi"`
	RateLimiter             *bool `mapstructure:"rateLimiter"`
	DebugMode               *bool `mapstructure:"debug"`
	VisualizeTimeoutSeconds *int  `mapstructure:"visualizeTimeoutSeconds"`
}

type SettingsPatchInput struct {
	Body map[string]any
}
