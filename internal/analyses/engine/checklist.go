package engine

// MaxChecklistItems caps the number of items per checklist round.
const MaxChecklistItems = 8

// ChecklistRoundTitles are the fixed round titles, in order.
var ChecklistRoundTitles = []string{
	"Round 1: Aptitude / Basics",
	"Round 2: DSA + Core CS",
	"Round 3: Tech interview (projects + stack)",
	"Round 4: Managerial / HR",
}

// BuildChecklist returns the four-round preparation checklist.
func BuildChecklist(skills ExtractedSkills) []ChecklistRound {
	generic := skills.IsGeneric()
	hasWeb := len(skills.Web) > 0
	hasData := len(skills.Data) > 0
	hasCloud := len(skills.Cloud) > 0
	hasTesting := len(skills.Testing) > 0

	round1 := fillRound([]string{
		"Revise percentages, ratios, and probability basics",
		"Solve 20 aptitude questions under timed conditions",
		"Practice CS fundamentals flashcards for quick recall",
		"Review complexity notation and common patterns",
		"Prepare a concise self-introduction tailored to the role",
		when(hasWeb, "Review web request/response lifecycle basics"),
		when(hasData, "Refresh SQL syntax essentials for short questions"),
		when(generic, "Practice basic coding problems in your strongest language"),
	}, []string{
		"Revise common interview puzzle patterns",
		"Practice quick mental math for aptitude speed",
	})

	round2 := fillRound([]string{
		"Practice arrays, strings, and hash map coding problems",
		"Solve two medium DSA problems with full dry run",
		"Revise OOP pillars with practical examples",
		"Review DBMS normalization and indexing concepts",
		"Revise OS process/thread and scheduling basics",
		"Revise networking layers, HTTP, and TCP vs UDP",
		when(skills.Has(CategoryCoreCS, "DSA"), "Practice binary search and two-pointer optimizations"),
	}, []string{
		"Practice recursion and dynamic programming fundamentals",
		"Review time-space tradeoffs for common patterns",
	})

	round3 := fillRound([]string{
		"Prepare project deep-dive with architecture decisions",
		"Map JD skills to your project talking points",
		when(hasWeb, "Revise component design and API integration strategy"),
		when(hasData, "Explain schema design and query optimization choices"),
		when(hasCloud, "Explain deployment pipeline and environment strategy"),
		when(hasTesting, "Prepare test strategy for critical user flows"),
		when(generic, "Prepare one project story that shows structured problem solving"),
		"Practice trade-off based technical discussion",
	}, []string{
		"Prepare one end-to-end system explanation from requirement to deployment",
		"Rehearse how your stack choices impacted project outcomes",
		"List scalability bottlenecks and mitigation options",
	})

	round4 := fillRound([]string{
		"Prepare STAR format stories for challenge scenarios",
		"Draft answers for strengths, weaknesses, and conflict handling",
		"Align salary/location expectations with role level",
		"Prepare questions to ask interviewer about team and roadmap",
		"Practice concise explanation of career goals",
		when(generic, "Prepare examples that show communication and teamwork"),
	}, []string{
		"Rehearse introduction and closing statements",
		"Prepare examples of collaboration and ownership",
	})

	items := [][]string{round1, round2, round3, round4}
	out := make([]ChecklistRound, len(ChecklistRoundTitles))
	for i, title := range ChecklistRoundTitles {
		out[i] = ChecklistRound{RoundTitle: title, Items: items[i]}
	}
	return out
}

// fillRound merges base items with fallback padding, dedupes, then caps the list.
func fillRound(base, fallback []string) []string {
	merged := unique(append(unique(base), fallback...))
	if len(merged) > MaxChecklistItems {
		merged = merged[:MaxChecklistItems]
	}
	return merged
}

func when(cond bool, item string) string {
	if cond {
		return item
	}
	return ""
}
