package config

import "time"

const (
	envPort     = "PORT"
	envProvider = "PROVIDER"

	envScoreStreamURL       = "SCORESTREAM_API_URL"
	envScoreStreamKey       = "SCORESTREAM_API_KEY"
	envScoreStreamToken     = "SCORESTREAM_ACCESS_TOKEN"
	envScoreStreamTimeout   = "SCORESTREAM_TIMEOUT"
	envScoreStreamRate      = "SCORESTREAM_RATE_PER_SEC"
	envScoreStreamRetries   = "SCORESTREAM_RETRY_ATTEMPTS"
	envScoreStreamFinalID   = "SCORESTREAM_FINAL_SEGMENT_ID"
	envScoreStreamSearchCnt = "SCORESTREAM_SEARCH_COUNT"

	envPDFURL     = "PDF_SERVICE_URL"
	envPDFTimeout = "PDF_SERVICE_TIMEOUT"

	envImportTimezone   = "IMPORT_DEFAULT_TIMEZONE"
	envImportOrgID      = "IMPORT_DEFAULT_ORG_ID"
	envImportState      = "IMPORT_DEFAULT_STATE"
	envImportEmitScored = "IMPORT_EMIT_SCORED_STATUS"
	envSessionTTL       = "IMPORT_SESSION_TTL"
	envSweepInterval    = "IMPORT_SWEEP_INTERVAL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"
	envLogFile   = "LOG_FILE"

	defaultPort     = "4000"
	defaultProvider = "fixture"

	defaultScoreStreamURL     = "https://scorestream.com/api"
	defaultScoreStreamTimeout = 15 * Duration(time.Second)
	// Stay well under the remote quota during bulk resolution.
	defaultScoreStreamRate    = 5.0
	defaultScoreStreamRetries = 3
	defaultFinalSegmentID     = 19999
	defaultSearchCount        = 10

	defaultPDFTimeout = 60 * Duration(time.Second)

	defaultImportTimezone = "America/Los_Angeles"
	defaultImportOrgID    = 1000
	defaultSessionTTL     = 2 * Duration(time.Hour)
	defaultSweepInterval  = Duration(time.Minute)

	defaultMetricsPort = "9090"
	defaultServiceName = "schedule-import-service"
)
