// internal/workers/assessment/export-report/config.go
package exportreport

import "time"

type Config struct {
	Index          string
	Indent         bool
	ArchiveEnabled bool
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:          "assessment-reports",
		ArchiveEnabled: true,
		Timeout:        30 * time.Second,
	}
}
