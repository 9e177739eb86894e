// internal/workers/assessment/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	// OpsTopicARN receives an alert for every lead that could not be saved.
	OpsTopicARN string
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
