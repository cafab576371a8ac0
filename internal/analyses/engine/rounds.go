package engine

var enterpriseTrack = []RoundMappingItem{
	{
		RoundTitle:   "Round 1: Online Test",
		FocusAreas:   []string{"DSA", "Aptitude"},
		WhyItMatters: "This round filters for speed, accuracy, and coding fundamentals at scale.",
	},
	{
		RoundTitle:   "Round 2: Technical",
		FocusAreas:   []string{"DSA", "Core CS"},
		WhyItMatters: "Interviewers validate depth in algorithms and core computer science concepts.",
	},
	{
		RoundTitle:   "Round 3: Tech + Projects",
		FocusAreas:   []string{"Project architecture", "Implementation decisions"},
		WhyItMatters: "This round checks how you apply fundamentals to real engineering work.",
	},
	{
		RoundTitle:   "Round 4: HR",
		FocusAreas:   []string{"Role fit", "Communication"},
		WhyItMatters: "Final alignment on team fit, motivation, and long-term consistency.",
	},
}

var startupTrack = []RoundMappingItem{
	{
		RoundTitle:   "Round 1: Practical Coding",
		FocusAreas:   []string{"Feature-level build/debug tasks", "Target stack fluency"},
		WhyItMatters: "Startups prioritize immediate execution and shipping capability.",
	},
	{
		RoundTitle:   "Round 2: System Discussion",
		FocusAreas:   []string{"Architecture trade-offs", "Scalability"},
		WhyItMatters: "You are evaluated on owning end-to-end decisions under constraints.",
	},
	{
		RoundTitle:   "Round 3: Culture Fit",
		FocusAreas:   []string{"Ownership mindset", "Collaboration"},
		WhyItMatters: "Small teams require strong autonomy, clarity, and accountability.",
	},
}

var genericTrack = []RoundMappingItem{
	{
		RoundTitle:   "Round 1: Screening",
		FocusAreas:   []string{"Aptitude", "Basics"},
		WhyItMatters: "Helps shortlist candidates with reliable fundamentals.",
	},
	{
		RoundTitle:   "Round 2: Technical Interview",
		FocusAreas:   []string{"Core CS", "JD skills"},
		WhyItMatters: "Maps your preparedness directly to role requirements.",
	},
	{
		RoundTitle:   "Round 3: Project Discussion",
		FocusAreas:   []string{"Project depth", "Problem solving approach"},
		WhyItMatters: "Demonstrates practical ownership beyond theoretical knowledge.",
	},
	{
		RoundTitle:   "Round 4: HR / Managerial",
		FocusAreas:   []string{"Communication", "Alignment"},
		WhyItMatters: "Ensures team fit and role expectations are clear on both sides.",
	},
}

// MinRoundMappingLength is the length of the shortest track.
const MinRoundMappingLength = 3

// BuildRoundMapping selects one of the three fixed interview tracks.
// First match wins: enterprise with DSA, non-enterprise with a web stack, generic.
func BuildRoundMapping(skills ExtractedSkills, intel *CompanyIntel) []RoundMappingItem {
	isEnterprise := intel != nil && intel.SizeCategory == SizeEnterprise
	switch {
	case isEnterprise && skills.Has(CategoryCoreCS, "DSA"):
		return cloneRounds(enterpriseTrack)
	case !isEnterprise && (skills.Has(CategoryWeb, "React") || skills.Has(CategoryWeb, "Node.js")):
		return cloneRounds(startupTrack)
	default:
		return cloneRounds(genericTrack)
	}
}

func cloneRounds(in []RoundMappingItem) []RoundMappingItem {
	out := make([]RoundMappingItem, len(in))
	for i, item := range in {
		out[i] = RoundMappingItem{
			RoundTitle:   item.RoundTitle,
			FocusAreas:   append([]string(nil), item.FocusAreas...),
			WhyItMatters: item.WhyItMatters,
		}
	}
	return out
}
