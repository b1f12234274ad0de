package model

// --- SYSTEM CONFIG ---
// EnvConfig holds the settings read from the `config` environment variable.
type EnvConfig struct {
	Port          string `json:"port"`
	Environment   string `json:"environment"`
	MongoUri      string `json:"mongoUri"`
	MongoDatabase string `json:"mongoDatabase"`
	RedisUrl      string `json:"redisUrl"`
	JwtSecret     string `json:"jwtSecret"`

	// FunctionsUrl is the base URL of the hosted edge functions, the
	// visualize-play function lives under it.
	FunctionsUrl            string `json:"functionsUrl"`
	AnonKey                 string `json:"anonKey"`
	VisualizeTimeoutSeconds int    `json:"visualizeTimeoutSeconds"`

	// PreferAI skips the heuristic fast path. The heuristic still backs
	// upstream failures and empty AI replies.
	PreferAI bool `json:"preferAi"`

	FrontendUrls []string `json:"frontendUrls"`
	RateLimiter  bool     `json:"rateLimiter"`
	DebugMode    bool     `json:"debug"`
}

func (c *EnvConfig) IsProduction() bool {
	return c.Environment == "production"
}
