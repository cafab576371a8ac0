package engine

import "regexp"

// Rule maps a skill name to the patterns that detect it.
type Rule struct {
	Skill    string
	Patterns []*regexp.Regexp
}

// CategoryRules groups the detection rules of one category.
type CategoryRules struct {
	Category Category
	Rules    []Rule
}

// SkillRules is the keyword table used by Extract, in detection order.
var SkillRules = []CategoryRules{
	{
		Category: CategoryCoreCS,
		Rules: []Rule{
			{Skill: "DSA", Patterns: patterns(`\bdsa\b`, `data\s*structures?`, `algorithms?`)},
			{Skill: "OOP", Patterns: patterns(`\boops?\b`, `object[-\s]*oriented`)},
			{Skill: "DBMS", Patterns: patterns(`\bdbms\b`, `database\s*management`)},
			{Skill: "OS", Patterns: patterns(`\bos\b`, `operating\s*systems?`)},
			{Skill: "Networks", Patterns: patterns(`computer\s*networks?`, `networking`)},
		},
	},
	{
		Category: CategoryLanguages,
		Rules: []Rule{
			{Skill: "Java", Patterns: patterns(`\bjava\b`)},
			{Skill: "Python", Patterns: patterns(`\bpython\b`)},
			{Skill: "JavaScript", Patterns: patterns(`\bjavascript\b`, `\bjs\b`)},
			{Skill: "TypeScript", Patterns: patterns(`\btypescript\b`, `\bts\b`)},
			{Skill: "C++", Patterns: patterns(`(?:^|[^a-z0-9])c\+\+`, `\bcpp\b`)},
			{Skill: "C#", Patterns: patterns(`(?:^|[^a-z0-9])c#`, `c\s*sharp`)},
			{Skill: "Go", Patterns: patterns(`\bgo\b`, `\bgolang\b`)},
			{Skill: "C", Patterns: patterns(`\bc\s+language\b`, `\bc\s+programming\b`, `\bprogramming\s+in\s+c\b`)},
		},
	},
	{
		Category: CategoryWeb,
		Rules: []Rule{
			{Skill: "React", Patterns: patterns(`\breact(?:\.js|js)?\b`)},
			{Skill: "Next.js", Patterns: patterns(`next\.js`, `\bnextjs\b`)},
			{Skill: "Node.js", Patterns: patterns(`node\.js`, `\bnodejs\b`)},
			{Skill: "Express", Patterns: patterns(`\bexpress\b`, `express\.js`)},
			{Skill: "REST", Patterns: patterns(`\brest\b`, `restful\s*apis?`)},
			{Skill: "GraphQL", Patterns: patterns(`graphql`)},
		},
	},
	{
		Category: CategoryData,
		Rules: []Rule{
			{Skill: "SQL", Patterns: patterns(`\bsql\b`)},
			{Skill: "MongoDB", Patterns: patterns(`mongodb`, `mongo\s*db`)},
			{Skill: "PostgreSQL", Patterns: patterns(`postgresql`, `\bpostgres\b`)},
			{Skill: "MySQL", Patterns: patterns(`mysql`)},
			{Skill: "Redis", Patterns: patterns(`\bredis\b`)},
		},
	},
	{
		Category: CategoryCloud,
		Rules: []Rule{
			{Skill: "AWS", Patterns: patterns(`\baws\b`, `amazon\s*web\s*services`)},
			{Skill: "Azure", Patterns: patterns(`\bazure\b`)},
			{Skill: "GCP", Patterns: patterns(`\bgcp\b`, `google\s*cloud`)},
			{Skill: "Docker", Patterns: patterns(`\bdocker\b`)},
			{Skill: "Kubernetes", Patterns: patterns(`\bkubernetes\b`, `\bk8s\b`)},
			{Skill: "CI/CD", Patterns: patterns(`ci\s*/\s*cd`, `continuous\s*integration`)},
			{Skill: "Linux", Patterns: patterns(`\blinux\b`)},
		},
	},
	{
		Category: CategoryTesting,
		Rules: []Rule{
			{Skill: "Selenium", Patterns: patterns(`\bselenium\b`)},
			{Skill: "Cypress", Patterns: patterns(`\bcypress\b`)},
			{Skill: "Playwright", Patterns: patterns(`\bplaywright\b`)},
			{Skill: "JUnit", Patterns: patterns(`\bjunit\b`)},
			{Skill: "PyTest", Patterns: patterns(`\bpytest\b`)},
		},
	},
}

var fallbackOtherSkills = []string{"Communication", "Problem solving", "Basic coding", "Projects"}

// FallbackOtherSkills returns the skills used when nothing technical is detected.
func FallbackOtherSkills() []string {
	return append([]string(nil), fallbackOtherSkills...)
}

// Extract detects skills in jdText using SkillRules.
func Extract(jdText string) ExtractedSkills {
	out := ExtractedSkills{
		CoreCS:    []string{},
		Languages: []string{},
		Web:       []string{},
		Data:      []string{},
		Cloud:     []string{},
		Testing:   []string{},
		Other:     []string{},
	}
	detected := 0
	for _, group := range SkillRules {
		found := make([]string, 0, len(group.Rules))
		for _, rule := range group.Rules {
			if rule.Matches(jdText) {
				found = append(found, rule.Skill)
			}
		}
		found = unique(found)
		detected += len(found)
		out.Set(group.Category, found)
	}
	if detected == 0 {
		out.Other = FallbackOtherSkills()
	}
	return out
}

// Matches reports whether any of the rule's patterns occurs in text.
func (r Rule) Matches(text string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

func unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
