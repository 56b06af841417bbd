package config

// Config holds runtime configuration for the server and the CLI.
type Config struct {
	Port        string
	Provider    string
	ScoreStream ScoreStreamConfig
	PDF         PDFConfig
	Import      ImportConfig
	Metrics     MetricsConfig
	Log         LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    envOrDefault(envProvider, defaultProvider),
		ScoreStream: loadScoreStream(),
		PDF:         loadPDF(),
		Import:      loadImport(),
		Metrics:     loadMetrics(),
		Log:         loadLog(),
	}
}
