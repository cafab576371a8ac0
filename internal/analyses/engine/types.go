package engine

// Category names a bucket of extracted skills.
type Category string

const (
	CategoryCoreCS    Category = "coreCS"
	CategoryLanguages Category = "languages"
	CategoryWeb       Category = "web"
	CategoryData      Category = "data"
	CategoryCloud     Category = "cloud"
	CategoryTesting   Category = "testing"
	CategoryOther     Category = "other"
)

// TechnicalCategories lists every category except the fallback, in display order.
var TechnicalCategories = []Category{
	CategoryCoreCS,
	CategoryLanguages,
	CategoryWeb,
	CategoryData,
	CategoryCloud,
	CategoryTesting,
}

// ExtractedSkills holds detected skills per category.
type ExtractedSkills struct {
	CoreCS    []string `json:"coreCS"`
	Languages []string `json:"languages"`
	Web       []string `json:"web"`
	Data      []string `json:"data"`
	Cloud     []string `json:"cloud"`
	Testing   []string `json:"testing"`
	Other     []string `json:"other"`
}

// Get returns the skills stored under category.
func (s ExtractedSkills) Get(category Category) []string {
	switch category {
	case CategoryCoreCS:
		return s.CoreCS
	case CategoryLanguages:
		return s.Languages
	case CategoryWeb:
		return s.Web
	case CategoryData:
		return s.Data
	case CategoryCloud:
		return s.Cloud
	case CategoryTesting:
		return s.Testing
	case CategoryOther:
		return s.Other
	default:
		return nil
	}
}

// Set replaces the skills stored under category.
func (s *ExtractedSkills) Set(category Category, skills []string) {
	switch category {
	case CategoryCoreCS:
		s.CoreCS = skills
	case CategoryLanguages:
		s.Languages = skills
	case CategoryWeb:
		s.Web = skills
	case CategoryData:
		s.Data = skills
	case CategoryCloud:
		s.Cloud = skills
	case CategoryTesting:
		s.Testing = skills
	case CategoryOther:
		s.Other = skills
	}
}

// Has reports whether skill was detected under category.
func (s ExtractedSkills) Has(category Category, skill string) bool {
	for _, item := range s.Get(category) {
		if item == skill {
			return true
		}
	}
	return false
}

// TechnicalSkills returns the detected technical skills in detection order.
func (s ExtractedSkills) TechnicalSkills() []string {
	out := make([]string, 0, 16)
	for _, category := range TechnicalCategories {
		out = append(out, s.Get(category)...)
	}
	return out
}

// AllSkills returns every skill across all categories, deduplicated, in detection order.
func (s ExtractedSkills) AllSkills() []string {
	all := append(s.TechnicalSkills(), s.Other...)
	return unique(all)
}

// IsGeneric reports whether the fallback category is in use.
func (s ExtractedSkills) IsGeneric() bool {
	return len(s.Other) > 0
}

// CompanySize is the inferred size bucket of a company.
type CompanySize string

const (
	SizeStartup    CompanySize = "Startup"
	SizeMidSize    CompanySize = "Mid-size"
	SizeEnterprise CompanySize = "Enterprise"
)

// CompanyIntel is heuristically inferred company context.
type CompanyIntel struct {
	CompanyName        string      `json:"companyName"`
	Industry           string      `json:"industry"`
	SizeCategory       CompanySize `json:"sizeCategory"`
	TypicalHiringFocus string      `json:"typicalHiringFocus"`
	Note               string      `json:"note"`
}

// RoundMappingItem describes one expected interview round.
type RoundMappingItem struct {
	RoundTitle   string   `json:"roundTitle"`
	FocusAreas   []string `json:"focusAreas"`
	WhyItMatters string   `json:"whyItMatters"`
}

// ChecklistRound is the preparation checklist for one round.
type ChecklistRound struct {
	RoundTitle string   `json:"roundTitle"`
	Items      []string `json:"items"`
}

// DayPlan is one block of the 7-day plan.
type DayPlan struct {
	Day   string   `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// Confidence is a self-assessment for a single skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	return c == ConfidenceKnow || c == ConfidencePractice
}

// Output is the full result of analyzing a job description.
type Output struct {
	ExtractedSkills    ExtractedSkills       `json:"extractedSkills"`
	CompanyIntel       *CompanyIntel         `json:"companyIntel"`
	RoundMapping       []RoundMappingItem    `json:"roundMapping"`
	Checklist          []ChecklistRound      `json:"checklist"`
	Plan7Days          []DayPlan             `json:"plan7Days"`
	Questions          []string              `json:"questions"`
	BaseScore          int                   `json:"baseScore"`
	SkillConfidenceMap map[string]Confidence `json:"skillConfidenceMap"`
	FinalScore         int                   `json:"finalScore"`
}
