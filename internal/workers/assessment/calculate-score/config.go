// internal/workers/assessment/calculate-score/config.go
package calculatescore

import "time"

type Config struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheEnabled: true,
		CacheTTL:     24 * time.Hour,
		Timeout:      10 * time.Second,
	}
}
