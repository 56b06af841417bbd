package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// LogConfig controls log level, format and the optional rotating log file.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

func loadLog() LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, ""),
		Format: envOrDefault(envLogFormat, ""),
		File:   envOrDefault(envLogFile, ""),
	}
}
