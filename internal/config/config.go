package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	DataPath     string
	MatchMinutes int
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		DataPath:     envOrDefault(envDataPath, defaultDataPath),
		MatchMinutes: intEnvOrDefault(envMatchMinutes, defaultMatchMinutes),
		Metrics:      loadMetrics(),
	}
}
