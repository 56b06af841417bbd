package config

// ScoreStreamConfig controls how we talk to the ScoreStream API.
type ScoreStreamConfig struct {
	BaseURL        string
	APIKey         string
	AccessToken    string
	Timeout        Duration
	RatePerSec     float64
	RetryAttempts  int
	FinalSegmentID int
	SearchCount    int
}

// PDFConfig points at the schedule extraction service. An empty URL disables PDF import.
type PDFConfig struct {
	BaseURL string
	Timeout Duration
}

func loadScoreStream() ScoreStreamConfig {
	return ScoreStreamConfig{
		BaseURL:        envOrDefault(envScoreStreamURL, defaultScoreStreamURL),
		APIKey:         envOrDefault(envScoreStreamKey, ""),
		AccessToken:    envOrDefault(envScoreStreamToken, ""),
		Timeout:        durationEnvOrDefault(envScoreStreamTimeout, defaultScoreStreamTimeout),
		RatePerSec:     floatEnvOrDefault(envScoreStreamRate, defaultScoreStreamRate),
		RetryAttempts:  intEnvOrDefault(envScoreStreamRetries, defaultScoreStreamRetries),
		FinalSegmentID: intEnvOrDefault(envScoreStreamFinalID, defaultFinalSegmentID),
		SearchCount:    intEnvOrDefault(envScoreStreamSearchCnt, defaultSearchCount),
	}
}

func loadPDF() PDFConfig {
	return PDFConfig{
		BaseURL: envOrDefault(envPDFURL, ""),
		Timeout: durationEnvOrDefault(envPDFTimeout, defaultPDFTimeout),
	}
}
