package config

const (
	defaultDataDir = "~/.local/share/mcl"
	defaultLogDir  = "~/.local/share/mcl/logs"

	defaultLMSPrimaryType     = "flms-courses"
	defaultLMSSKUMetaKey      = "_sku"
	defaultLMSArchivedMetaKey = "bhfe_archived_course"

	defaultMinAutoConfidence    = 95
	defaultTitleSimilarityMin   = 70.0
	defaultTitleMaxEditDistance = 5
	defaultTitleConfidenceCap   = 95

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultLMSSecondaryTypes() []string {
	return []string{"course", "llms_course", "sfwd-courses", "courses", "mnc-courses"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LMS: LMS{
			PrimaryType:     defaultLMSPrimaryType,
			SecondaryTypes:  defaultLMSSecondaryTypes(),
			SKUMetaKey:      defaultLMSSKUMetaKey,
			ArchivedMetaKey: defaultLMSArchivedMetaKey,
		},
		Matching: Matching{
			MinAutoConfidence:    defaultMinAutoConfidence,
			TitleSimilarityMin:   defaultTitleSimilarityMin,
			TitleMaxEditDistance: defaultTitleMaxEditDistance,
			TitleConfidenceCap:   defaultTitleConfidenceCap,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
