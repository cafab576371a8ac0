// Package engine turns a job description into a deterministic interview
// preparation package. Every function here is pure: no I/O, no clock.
package engine

// Analyze runs extraction, intel, round mapping, generators and scoring once, in that order.
func Analyze(jdText, company, role string) Output {
	skills := Extract(jdText)
	intel := InferIntel(company, role, jdText)
	rounds := BuildRoundMapping(skills, intel)
	checklist := BuildChecklist(skills)
	plan := BuildPlan(skills)
	questions := BuildQuestions(skills)
	base := BaseScore(jdText, company, role, skills)
	confidence := DefaultConfidence(skills)

	return Output{
		ExtractedSkills:    skills,
		CompanyIntel:       intel,
		RoundMapping:       rounds,
		Checklist:          checklist,
		Plan7Days:          plan,
		Questions:          questions,
		BaseScore:          base,
		SkillConfidenceMap: confidence,
		FinalScore:         FinalScore(base, confidence, skills),
	}
}

// AnalyzeJobDescription is the entry point used by API and CLI callers.
func AnalyzeJobDescription(jdText, company, role string) Output {
	return Analyze(jdText, company, role)
}

// DeriveCompanyIntel re-derives company intel, e.g. for records stored without it.
func DeriveCompanyIntel(company, role, jdText string) *CompanyIntel {
	return InferIntel(company, role, jdText)
}

// DeriveRoundMapping re-derives the round mapping for stored records.
func DeriveRoundMapping(skills ExtractedSkills, intel *CompanyIntel) []RoundMappingItem {
	return BuildRoundMapping(skills, intel)
}
