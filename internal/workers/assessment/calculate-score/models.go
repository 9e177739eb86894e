// internal/workers/assessment/calculate-score/models.go
package calculatescore

import (
	"time"

	"readiness-workers/internal/assessment"
)

type Input struct {
	Response *assessment.AssessmentResponse `json:"response"`
}

type Output struct {
	ReadinessScore   int                         `json:"readinessScore"`
	Tier             assessment.Tier             `json:"tier"`
	Breakdown        assessment.ScoreBreakdown   `json:"breakdown"`
	Recommendations  []assessment.Recommendation `json:"recommendations"`
	ProjectedMetrics assessment.ProjectedMetrics `json:"projectedMetrics"`
	CalculatedAt     time.Time                   `json:"calculatedAt"`
	TopPriority      assessment.Priority         `json:"topPriority"`
	TablesVersion    string                      `json:"tablesVersion"`
	Cached           bool                        `json:"cached"`
}

// Result rebuilds the engine result carried in the output.
func (o *Output) Result() assessment.ScoreResult {
	return assessment.ScoreResult{
		ReadinessScore:   o.ReadinessScore,
		Tier:             o.Tier,
		Breakdown:        o.Breakdown,
		Recommendations:  o.Recommendations,
		ProjectedMetrics: o.ProjectedMetrics,
		CalculatedAt:     o.CalculatedAt,
	}
}

func newOutput(result assessment.ScoreResult, version string, cached bool) *Output {
	return &Output{
		ReadinessScore:   result.ReadinessScore,
		Tier:             result.Tier,
		Breakdown:        result.Breakdown,
		Recommendations:  result.Recommendations,
		ProjectedMetrics: result.ProjectedMetrics,
		CalculatedAt:     result.CalculatedAt,
		TopPriority:      result.HighestPriority(),
		TablesVersion:    version,
		Cached:           cached,
	}
}
