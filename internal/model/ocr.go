package model

import "fmt"

// OCRStats holds the statistics an OCR pass reports for one scan.
// Absent fields are zero values and score as worst-case.
type OCRStats struct {
	Confidence float64 // engine-reported confidence in [0,1]
	LineCount  int
	BlockCount int
	FullText   string
}

// ProcessingRecommendation tells the caller how to handle a scanned receipt.
type ProcessingRecommendation string

// Processing recommendations, from most to least local.
const (
	RecommendLocalOnly       ProcessingRecommendation = "local_only"
	RecommendLocalFirst      ProcessingRecommendation = "local_first"
	RecommendOnlineSuggested ProcessingRecommendation = "online_suggested"
	RecommendOnlineRequired  ProcessingRecommendation = "online_required"
)

// FactorScores holds the per-factor quality scores, each in [0,1].
type FactorScores struct {
	OCRConfidence float64
	TextDensity   float64
	PricePattern  float64
	Structure     float64
}

// ConfidenceAnalysis is the analyzer's verdict on one OCR pass.
// Derived purely from the stats; recomputed each call.
type ConfidenceAnalysis struct {
	OverallScore   float64 // weighted sum in [0,1]
	Factors        FactorScores
	Recommendation ProcessingRecommendation
	Reasoning      string
	Issues         []string
}

// Validate ensures the analysis holds scores in range and a known recommendation.
func (a *ConfidenceAnalysis) Validate() error {
	scores := map[string]float64{
		"overall":        a.OverallScore,
		"ocr confidence": a.Factors.OCRConfidence,
		"text density":   a.Factors.TextDensity,
		"price pattern":  a.Factors.PricePattern,
		"structure":      a.Factors.Structure,
	}
	for name, score := range scores {
		if score < 0.0 || score > 1.0 {
			return fmt.Errorf("%s score must be between 0.0 and 1.0, got %.2f", name, score)
		}
	}

	switch a.Recommendation {
	case RecommendLocalOnly, RecommendLocalFirst, RecommendOnlineSuggested, RecommendOnlineRequired:
		return nil
	default:
		return fmt.Errorf("unknown recommendation %q", a.Recommendation)
	}
}
