package analyses

import (
	"fmt"
	"strings"

	"prep-backend/internal/analyses/engine"
	"prep-backend/internal/shared/util"
)

// Export section keys, in report order.
const (
	SectionSummary   = "summary"
	SectionIntel     = "intel"
	SectionRounds    = "rounds"
	SectionSkills    = "skills"
	SectionChecklist = "checklist"
	SectionPlan      = "plan"
	SectionQuestions = "questions"
	SectionAction    = "action"
)

// Sections lists every export section in report order.
var Sections = []string{
	SectionSummary,
	SectionIntel,
	SectionRounds,
	SectionSkills,
	SectionChecklist,
	SectionPlan,
	SectionQuestions,
	SectionAction,
}

var categoryLabels = map[engine.Category]string{
	engine.CategoryCoreCS:    "Core CS",
	engine.CategoryLanguages: "Languages",
	engine.CategoryWeb:       "Web",
	engine.CategoryData:      "Data",
	engine.CategoryCloud:     "Cloud/DevOps",
	engine.CategoryTesting:   "Testing",
	engine.CategoryOther:     "Other",
}

const actionSkillLimit = 3

// RenderReport renders every section of e as a plain-text report.
func RenderReport(e Entry) string {
	parts := make([]string, 0, len(Sections))
	for _, section := range Sections {
		text, _ := RenderSection(e, section)
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// RenderSection renders one named section of e.
func RenderSection(e Entry, section string) (string, error) {
	var b strings.Builder
	switch strings.ToLower(strings.TrimSpace(section)) {
	case SectionSummary:
		b.WriteString("Placement Readiness Report\n")
		fmt.Fprintf(&b, "Company: %s\n", orDash(e.Company))
		fmt.Fprintf(&b, "Role: %s\n", orDash(e.Role))
		fmt.Fprintf(&b, "Created: %s\n", e.CreatedAt)
		fmt.Fprintf(&b, "Base Score: %d/100\n", e.BaseScore)
		fmt.Fprintf(&b, "Final Score: %d/100", e.FinalScore)
	case SectionIntel:
		b.WriteString("Company Intel\n")
		if e.CompanyIntel == nil {
			b.WriteString("- Not available (no company provided)")
			break
		}
		fmt.Fprintf(&b, "- Company: %s\n", e.CompanyIntel.CompanyName)
		fmt.Fprintf(&b, "- Industry: %s\n", e.CompanyIntel.Industry)
		fmt.Fprintf(&b, "- Size: %s\n", e.CompanyIntel.SizeCategory)
		fmt.Fprintf(&b, "- Typical Hiring Focus: %s\n", e.CompanyIntel.TypicalHiringFocus)
		fmt.Fprintf(&b, "- Note: %s", e.CompanyIntel.Note)
	case SectionRounds:
		b.WriteString("Round Mapping")
		for i, round := range e.RoundMapping {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, round.RoundTitle)
			fmt.Fprintf(&b, "   Focus: %s\n", strings.Join(round.FocusAreas, ", "))
			fmt.Fprintf(&b, "   Why it matters: %s", round.WhyItMatters)
		}
	case SectionSkills:
		b.WriteString("Key Skills Extracted")
		for _, category := range append(append([]engine.Category(nil), engine.TechnicalCategories...), engine.CategoryOther) {
			skills := e.ExtractedSkills.Get(category)
			if len(skills) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n- %s: %s", categoryLabels[category], strings.Join(skills, ", "))
		}
	case SectionChecklist:
		b.WriteString("Round-wise Checklist")
		for _, round := range e.Checklist {
			fmt.Fprintf(&b, "\n%s", round.RoundTitle)
			for _, item := range round.Items {
				fmt.Fprintf(&b, "\n- %s", item)
			}
		}
	case SectionPlan:
		b.WriteString("7-Day Plan")
		for _, day := range e.Plan7Days {
			fmt.Fprintf(&b, "\n%s: %s", day.Day, day.Focus)
			for _, task := range day.Tasks {
				fmt.Fprintf(&b, "\n- %s", task)
			}
		}
	case SectionQuestions:
		b.WriteString("Likely Interview Questions")
		for i, q := range e.Questions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, q)
		}
	case SectionAction:
		b.WriteString("Action Next\n")
		weak := PracticeSkills(e, actionSkillLimit)
		if len(weak) == 0 {
			b.WriteString("- Every skill is marked as known.\n")
			b.WriteString("- Next step: Run a full mock interview for this role.")
			break
		}
		fmt.Fprintf(&b, "- Focus skills: %s\n", strings.Join(weak, ", "))
		b.WriteString("- Next step: Start Day 1 plan now.")
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return b.String(), nil
}

// PracticeSkills returns up to limit skills still marked practice, in detection order.
func PracticeSkills(e Entry, limit int) []string {
	out := make([]string, 0, limit)
	for _, skill := range e.ExtractedSkills.AllSkills() {
		if len(out) == limit {
			break
		}
		if e.SkillConfidenceMap[skill] != engine.ConfidenceKnow {
			out = append(out, skill)
		}
	}
	return out
}

// ExportFileName is the download name for e's report, optionally for one section.
func ExportFileName(e Entry, section string) string {
	base := util.Slug(strings.TrimSpace(e.Company + " " + e.Role))
	if base == "" {
		base = util.Slug(e.ID)
	}
	if base == "" {
		base = "report"
	}
	name := "prep-" + base
	if section != "" {
		name += "-" + strings.ToLower(strings.TrimSpace(section))
	}
	if safe, err := util.SanitizeFileName(name + ".txt"); err == nil {
		return safe
	}
	return "prep-report.txt"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
