// internal/workers/assessment/save-lead/config.go
package savelead

import "time"

type Config struct {
	// DuplicateWindow is how long an identical submission from the same
	// e-mail maps back to the existing lead.
	DuplicateWindow time.Duration
	CRMEnabled      bool
	Timeout         time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DuplicateWindow: 24 * time.Hour,
		Timeout:         30 * time.Second,
	}
}
