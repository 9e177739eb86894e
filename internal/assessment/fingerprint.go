// internal/assessment/fingerprint.go
package assessment

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint identifies a response independently of set ordering. Equal
// fingerprints always produce equal scores.
func (r AssessmentResponse) Fingerprint() string {
	data, _ := json.Marshal(r.Normalized())
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Version identifies the table contents so cached results can be keyed by it.
func (t Tables) Version() string {
	data, _ := json.Marshal(t)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
