// Package ocr scores the quality of an OCR pass and recommends how to
// process the scanned receipt.
package ocr

import (
	"regexp"

	"github.com/jpaulson/cartful/internal/model"
)

// Factor weights. They sum to 1.0 so the overall score stays in [0,1].
const (
	weightConfidence  = 0.35
	weightTextDensity = 0.25
	weightPrices      = 0.20
	weightStructure   = 0.20
)

// Recommendation buckets over the overall score.
const (
	localOnlyFloor       = 0.80
	localFirstFloor      = 0.65
	onlineSuggestedFloor = 0.45
)

// pricePattern matches price-like substrings such as "$12.99" or "4,50".
var pricePattern = regexp.MustCompile(`\$?\d+[.,]\d{2}`)

// Analyze scores one OCR pass. It is a pure function: no side effects,
// and absent fields simply score as worst case.
func Analyze(stats model.OCRStats) model.ConfidenceAnalysis {
	var issues []string

	engineScore := clamp01(stats.Confidence)
	if engineScore < 0.7 {
		issues = append(issues, "OCR engine reported low confidence")
	}

	densityScore, densityIssue := scoreTextDensity(stats.LineCount)
	if densityIssue != "" {
		issues = append(issues, densityIssue)
	}

	priceScore, priceIssue := scorePricePatterns(stats.FullText)
	if priceIssue != "" {
		issues = append(issues, priceIssue)
	}

	structureScore, structureIssue := scoreStructure(stats.BlockCount)
	if structureIssue != "" {
		issues = append(issues, structureIssue)
	}

	overall := weightConfidence*engineScore +
		weightTextDensity*densityScore +
		weightPrices*priceScore +
		weightStructure*structureScore

	recommendation, reasoning := recommend(overall)

	return model.ConfidenceAnalysis{
		OverallScore: overall,
		Factors: model.FactorScores{
			OCRConfidence: engineScore,
			TextDensity:   densityScore,
			PricePattern:  priceScore,
			Structure:     structureScore,
		},
		Recommendation: recommendation,
		Reasoning:      reasoning,
		Issues:         issues,
	}
}

// scoreTextDensity bands the line count. Receipts normally land between
// 20 and 100 lines; far outside that range the scan is suspect.
func scoreTextDensity(lineCount int) (float64, string) {
	switch {
	case lineCount < 10:
		return 0.3, "very little text detected"
	case lineCount < 20:
		return 0.6, "less text than a typical receipt"
	case lineCount <= 100:
		return 1.0, ""
	default:
		return 0.7, "unusually large amount of text"
	}
}

// scorePricePatterns counts price-like substrings in the raw text.
func scorePricePatterns(fullText string) (float64, string) {
	count := len(pricePattern.FindAllString(fullText, -1))
	switch {
	case count < 3:
		return 0.4, "few price patterns found"
	case count < 5:
		return 0.7, "fewer price patterns than expected"
	default:
		return 1.0, ""
	}
}

// scoreStructure bands the block count as a proxy for layout quality.
func scoreStructure(blockCount int) (float64, string) {
	switch {
	case blockCount < 3:
		return 0.5, "too few text blocks for a structured receipt"
	case blockCount <= 15:
		return 1.0, ""
	default:
		return 0.7, "fragmented text blocks"
	}
}

// recommend buckets the overall score into a processing recommendation.
func recommend(score float64) (model.ProcessingRecommendation, string) {
	switch {
	case score >= localOnlyFloor:
		return model.RecommendLocalOnly, "High quality scan; local parsing should be reliable"
	case score >= localFirstFloor:
		return model.RecommendLocalFirst, "Good scan; try local parsing and fall back to online"
	case score >= onlineSuggestedFloor:
		return model.RecommendOnlineSuggested, "Marginal scan; online parsing will likely do better"
	default:
		return model.RecommendOnlineRequired, "Poor scan; local parsing is unlikely to succeed"
	}
}

// clamp01 bounds v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
