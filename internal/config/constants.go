package config

const (
	envPort         = "PORT"
	envDataPath     = "DATA_PATH"
	envMatchMinutes = "MATCH_MINUTES"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// Relative to the working directory; an unopenable file degrades to
	// in-memory storage rather than refusing to start.
	defaultDataPath     = "data/fredagsliga.db"
	defaultMatchMinutes = 5
	defaultMetricsPort  = "9090"
)
