package engine

// QuestionCount is the exact number of questions produced per analysis.
const QuestionCount = 10

// SkillQuestions maps a skill to its interview question.
var SkillQuestions = map[string]string{
	"SQL":        "Explain indexing and when it helps.",
	"React":      "Explain state management options and when to use each.",
	"DSA":        "How would you optimize search in sorted data?",
	"Node.js":    "How do you handle async errors and retries in Node.js APIs?",
	"REST":       "How do you design versioned REST APIs for backward compatibility?",
	"GraphQL":    "When would you choose GraphQL over REST?",
	"Docker":     "How would you optimize a Docker image for production?",
	"Kubernetes": "How do you debug a failing pod in Kubernetes?",
	"AWS":        "How would you design a scalable backend on AWS?",
	"OOP":        "How do inheritance and composition differ in real project design?",
	"DBMS":       "What is normalization and when do you denormalize?",
	"OS":         "How do processes and threads differ in scheduling and memory use?",
	"Networks":   "Explain the difference between TCP and UDP with real use cases.",
	"Java":       "How does JVM memory management affect application performance?",
	"Python":     "What are common Python performance bottlenecks in backend code?",
	"JavaScript": "Explain event loop behavior with microtasks and macrotasks.",
	"TypeScript": "How do union and generic types improve maintainability?",
	"Go":         "How do goroutines and channels help structure concurrent services?",
	"MongoDB":    "How do you model one-to-many relationships in MongoDB?",
	"PostgreSQL": "How do transactions and isolation levels work in PostgreSQL?",
	"Redis":      "When would you put Redis in front of a primary database?",
	"Linux":      "Which Linux commands do you use most while debugging services?",
	"CI/CD":      "How would you design a CI/CD pipeline with safe rollbacks?",
	"Selenium":   "How do you reduce flaky tests in Selenium suites?",
	"Cypress":    "When is Cypress preferable to Selenium?",
	"Playwright": "How would you structure Playwright tests for cross-browser runs?",
	"JUnit":      "How do you write isolated JUnit tests for service layers?",
	"PyTest":     "What fixtures strategy do you use for maintainable PyTest suites?",
}

var genericQuestions = []string{
	"Walk through one project where you solved a production issue end-to-end.",
	"How do you prioritize features under tight deadlines?",
	"How do you validate that your solution scales for peak traffic?",
	"Describe a time you improved code quality in an existing codebase.",
	"How would you approach learning a missing skill in two weeks?",
	"How do you choose between readability and performance in critical paths?",
	"What metrics would you track after releasing a new feature?",
	"How do you communicate technical trade-offs to non-technical stakeholders?",
	"How do you handle disagreement during code reviews?",
	"What is your approach to testing before deployment?",
}

// placeholderQuestions pad stored question lists that came back short.
var placeholderQuestions = []string{
	"Tell me about yourself and why this role interests you.",
	"Which project are you most proud of, and why?",
	"Describe a bug that took you the longest to fix.",
	"What would your first 30 days in this role look like?",
	"How do you keep your technical skills current?",
	"Describe a time you received critical feedback.",
	"What trade-off did you regret in a past project?",
	"How do you break down an ambiguous problem?",
	"Describe a time you helped a teammate get unblocked.",
	"Where do you see yourself growing in the next two years?",
}

// BuildQuestions returns exactly QuestionCount unique questions, skill-specific first.
func BuildQuestions(skills ExtractedSkills) []string {
	candidates := make([]string, 0, QuestionCount*2)
	for _, skill := range skills.TechnicalSkills() {
		if q, ok := SkillQuestions[skill]; ok {
			candidates = append(candidates, q)
		}
	}
	candidates = append(candidates, genericQuestions...)
	return FitQuestions(candidates)
}

// FitQuestions dedupes questions and pads or truncates them to exactly QuestionCount.
func FitQuestions(questions []string) []string {
	out := unique(append(unique(questions), genericQuestions...))
	out = unique(append(out, placeholderQuestions...))
	if len(out) > QuestionCount {
		out = out[:QuestionCount]
	}
	return out
}
