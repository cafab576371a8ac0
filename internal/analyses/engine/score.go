package engine

import (
	"strings"
	"unicode/utf8"
)

const (
	scoreFloor        = 35
	scorePerCategory  = 5
	scoreCategoryCap  = 30
	scoreCompanyBonus = 10
	scoreRoleBonus    = 10
	scoreLongJDBonus  = 10
	longJDThreshold   = 800
	confidenceStep    = 2
	minScore          = 0
	maxScore          = 100
)

// BaseScore computes the readiness score fixed at analysis time.
func BaseScore(jdText, company, role string, skills ExtractedSkills) int {
	score := scoreFloor
	covered := 0
	for _, category := range TechnicalCategories {
		if len(skills.Get(category)) > 0 {
			covered++
		}
	}
	score += min(scoreCategoryCap, covered*scorePerCategory)
	if strings.TrimSpace(company) != "" {
		score += scoreCompanyBonus
	}
	if strings.TrimSpace(role) != "" {
		score += scoreRoleBonus
	}
	if utf8.RuneCountInString(strings.TrimSpace(jdText)) > longJDThreshold {
		score += scoreLongJDBonus
	}
	return ClampScore(score)
}

// CalculateFinalScore adjusts base by +2 per known and -2 per practice skill in confidence.
func CalculateFinalScore(base int, confidence map[string]Confidence) int {
	score := base
	for _, level := range confidence {
		score += confidenceDelta(level)
	}
	return ClampScore(score)
}

// FinalScore adjusts base over every skill in skills; skills missing from confidence count as practice.
func FinalScore(base int, confidence map[string]Confidence, skills ExtractedSkills) int {
	score := base
	for _, skill := range skills.AllSkills() {
		score += confidenceDelta(confidence[skill])
	}
	return ClampScore(score)
}

// DefaultConfidence marks every skill as practice.
func DefaultConfidence(skills ExtractedSkills) map[string]Confidence {
	all := skills.AllSkills()
	out := make(map[string]Confidence, len(all))
	for _, skill := range all {
		out[skill] = ConfidencePractice
	}
	return out
}

// ClampScore bounds score to [0,100].
func ClampScore(score int) int {
	return max(minScore, min(maxScore, score))
}

func confidenceDelta(level Confidence) int {
	if level == ConfidenceKnow {
		return confidenceStep
	}
	return -confidenceStep
}
