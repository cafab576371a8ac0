package engine

// PlanDays are the fixed day labels of the 7-day plan.
var PlanDays = []string{"Day 1-2", "Day 3-4", "Day 5", "Day 6", "Day 7"}

// BuildPlan returns the 7-day preparation plan.
func BuildPlan(skills ExtractedSkills) []DayPlan {
	return []DayPlan{
		{
			Day:   PlanDays[0],
			Focus: "Basics + core CS",
			Tasks: unique([]string{
				"Revise OOP, OS, DBMS, and networking summaries",
				"Solve quick aptitude sets for speed and accuracy",
				when(skills.IsGeneric(), "Pick one language and revise its syntax and standard library basics"),
			}),
		},
		{
			Day:   PlanDays[1],
			Focus: "DSA + coding practice",
			Tasks: unique([]string{
				"Solve 6-8 coding problems with pattern grouping",
				"Practice writing clean code with edge-case handling",
				when(skills.Has(CategoryCoreCS, "DSA"), "Time-box two medium problems on trees and graphs"),
			}),
		},
		{
			Day:   PlanDays[2],
			Focus: "Project + resume alignment",
			Tasks: unique([]string{
				"Update resume bullets with measurable impact",
				when(skills.Has(CategoryWeb, "React"), "Revise frontend architecture and state handling decisions"),
				when(skills.Has(CategoryWeb, "Node.js"), "Review backend API structure and error handling decisions"),
				when(skills.Has(CategoryData, "SQL"), "Prepare examples of indexing and query tuning in projects"),
			}),
		},
		{
			Day:   PlanDays[3],
			Focus: "Mock interview questions",
			Tasks: []string{
				"Attempt one full technical mock interview",
				"Practice HR and behavioral responses with concise structure",
			},
		},
		{
			Day:   PlanDays[4],
			Focus: "Revision + weak areas",
			Tasks: []string{
				"Revise mistakes from mock and coding sessions",
				"Create final rapid-revision sheet for interview day",
			},
		},
	}
}
