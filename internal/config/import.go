package config

// ImportConfig holds the defaults applied to new import sessions and their lifetime.
type ImportConfig struct {
	Timezone         string
	OrgID            int
	State            string
	EmitScoredStatus bool
	SessionTTL       Duration
	SweepInterval    Duration
}

func loadImport() ImportConfig {
	return ImportConfig{
		Timezone:         envOrDefault(envImportTimezone, defaultImportTimezone),
		OrgID:            intEnvOrDefault(envImportOrgID, defaultImportOrgID),
		State:            envOrDefault(envImportState, ""),
		EmitScoredStatus: boolEnvOrDefault(envImportEmitScored, false),
		SessionTTL:       durationEnvOrDefault(envSessionTTL, defaultSessionTTL),
		SweepInterval:    durationEnvOrDefault(envSweepInterval, defaultSweepInterval),
	}
}
