package analyses

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"prep-backend/internal/analyses/engine"
)

// categoryAliases maps a folded category key (lowercase, letters and digits only)
// from any stored shape to its current category.
var categoryAliases = map[string]engine.Category{
	"corecs":      engine.CategoryCoreCS,
	"cs":          engine.CategoryCoreCS,
	"languages":   engine.CategoryLanguages,
	"language":    engine.CategoryLanguages,
	"web":         engine.CategoryWeb,
	"data":        engine.CategoryData,
	"cloud":       engine.CategoryCloud,
	"clouddevops": engine.CategoryCloud,
	"devops":      engine.CategoryCloud,
	"testing":     engine.CategoryTesting,
	"other":       engine.CategoryOther,
	"general":     engine.CategoryOther,
}

// NormalizeEntry maps any stored shape of an analysis onto the current Entry.
// ok is false when the record cannot yield a non-empty id and jdText.
// Normalizing an already normalized entry returns it unchanged.
func NormalizeEntry(raw any) (Entry, bool) {
	return normalizeEntry(raw, time.Now().UTC())
}

func normalizeEntry(raw any, now time.Time) (Entry, bool) {
	record, ok := asRecord(raw)
	if !ok {
		return Entry{}, false
	}

	id := stringField(record, "id")
	jdText := verbatimField(record, "jdText", "jd", "jobDescription")
	if id == "" || jdText == "" {
		return Entry{}, false
	}

	entry := Entry{
		ID:      id,
		JDText:  jdText,
		Company: stringField(record, "company", "companyName"),
		Role:    stringField(record, "role", "jobTitle"),
	}
	entry.CreatedAt, entry.UpdatedAt = normalizeTimestamps(record, now)

	skills := normalizeSkills(record["extractedSkills"], jdText)
	entry.ExtractedSkills = skills
	entry.CompanyIntel = normalizeIntel(record["companyIntel"], entry.Company, entry.Role, jdText)
	entry.RoundMapping = normalizeRounds(record["roundMapping"], skills, entry.CompanyIntel)
	entry.Checklist = normalizeChecklist(record["checklist"], skills)
	entry.Plan7Days = normalizePlan(firstPresent(record, "plan7Days", "plan"), skills)
	entry.Questions = normalizeQuestions(record["questions"], skills)
	entry.SkillConfidenceMap = normalizeConfidence(record["skillConfidenceMap"], skills)
	entry.BaseScore, entry.FinalScore = normalizeScores(record, entry)
	return entry, true
}

func asRecord(raw any) (map[string]any, bool) {
	var payload []byte
	switch v := raw.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	case json.RawMessage:
		payload = v
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		payload = encoded
	}
	var record map[string]any
	if err := json.Unmarshal(payload, &record); err != nil || record == nil {
		return nil, false
	}
	return record, true
}

func normalizeTimestamps(record map[string]any, now time.Time) (string, string) {
	created := timestampValue(record["createdAt"])
	updated := timestampValue(record["updatedAt"])
	if created == "" {
		created = updated
	}
	if created == "" {
		created = now.UTC().Format(time.RFC3339)
	}
	if updated == "" {
		updated = created
	}
	return created, updated
}

// timestampValue keeps parseable RFC 3339 strings as stored and converts epoch milliseconds.
func timestampValue(v any) string {
	switch t := v.(type) {
	case string:
		trimmed := strings.TrimSpace(t)
		if _, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return trimmed
		}
	case float64:
		if t > 0 {
			return time.UnixMilli(int64(t)).UTC().Format(time.RFC3339)
		}
	}
	return ""
}

func normalizeSkills(v any, jdText string) engine.ExtractedSkills {
	stored, ok := v.(map[string]any)
	if !ok {
		return engine.Extract(jdText)
	}

	out := emptySkills()
	recognized := false
	keys := make([]string, 0, len(stored))
	for key := range stored {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		category, ok := categoryAliases[foldKey(key)]
		if !ok {
			continue
		}
		recognized = true
		out.Set(category, uniqueStrings(append(out.Get(category), stringList(stored[key])...)))
	}
	if !recognized {
		return engine.Extract(jdText)
	}
	if len(out.TechnicalSkills()) == 0 && len(out.Other) == 0 {
		out.Other = engine.FallbackOtherSkills()
	}
	return out
}

func emptySkills() engine.ExtractedSkills {
	return engine.ExtractedSkills{
		CoreCS:    []string{},
		Languages: []string{},
		Web:       []string{},
		Data:      []string{},
		Cloud:     []string{},
		Testing:   []string{},
		Other:     []string{},
	}
}

func normalizeIntel(v any, company, role, jdText string) *engine.CompanyIntel {
	if strings.TrimSpace(company) == "" {
		return nil
	}
	stored, ok := v.(map[string]any)
	if !ok {
		return engine.DeriveCompanyIntel(company, role, jdText)
	}

	intel := &engine.CompanyIntel{
		CompanyName:        stringField(stored, "companyName", "name"),
		Industry:           stringField(stored, "industry"),
		SizeCategory:       engine.CompanySize(stringField(stored, "sizeCategory", "size")),
		TypicalHiringFocus: stringField(stored, "typicalHiringFocus", "hiringFocus"),
		Note:               stringField(stored, "note"),
	}
	if intel.CompanyName == "" {
		intel.CompanyName = company
	}
	if !engine.ValidSize(intel.SizeCategory) {
		intel.SizeCategory = engine.InferSize(company)
	}
	if !engine.ValidIndustry(intel.Industry) {
		intel.Industry = engine.InferIndustry(company, role, jdText)
	}
	if intel.TypicalHiringFocus == "" {
		intel.TypicalHiringFocus = engine.HiringFocus(intel.SizeCategory)
	}
	if intel.Note == "" {
		intel.Note = engine.IntelNote()
	}
	return intel
}

func normalizeRounds(v any, skills engine.ExtractedSkills, intel *engine.CompanyIntel) []engine.RoundMappingItem {
	items, _ := v.([]any)
	if len(items) < engine.MinRoundMappingLength {
		return engine.DeriveRoundMapping(skills, intel)
	}
	out := make([]engine.RoundMappingItem, 0, len(items))
	for _, item := range items {
		stored, ok := item.(map[string]any)
		if !ok {
			return engine.DeriveRoundMapping(skills, intel)
		}
		title := stringField(stored, "roundTitle", "round", "title")
		if title == "" {
			return engine.DeriveRoundMapping(skills, intel)
		}
		out = append(out, engine.RoundMappingItem{
			RoundTitle:   title,
			FocusAreas:   uniqueStrings(stringList(firstPresent(stored, "focusAreas", "focus"))),
			WhyItMatters: stringField(stored, "whyItMatters", "whyThisRoundMatters", "why"),
		})
	}
	return out
}

func normalizeChecklist(v any, skills engine.ExtractedSkills) []engine.ChecklistRound {
	items, _ := v.([]any)
	if len(items) != len(engine.ChecklistRoundTitles) {
		return engine.BuildChecklist(skills)
	}
	out := make([]engine.ChecklistRound, 0, len(items))
	for _, item := range items {
		stored, ok := item.(map[string]any)
		if !ok {
			return engine.BuildChecklist(skills)
		}
		title := stringField(stored, "roundTitle", "round", "title")
		if title == "" {
			return engine.BuildChecklist(skills)
		}
		list := uniqueStrings(stringList(firstPresent(stored, "items", "tasks")))
		if len(list) > engine.MaxChecklistItems {
			list = list[:engine.MaxChecklistItems]
		}
		out = append(out, engine.ChecklistRound{RoundTitle: title, Items: list})
	}
	return out
}

func normalizePlan(v any, skills engine.ExtractedSkills) []engine.DayPlan {
	items, _ := v.([]any)
	if len(items) != len(engine.PlanDays) {
		return engine.BuildPlan(skills)
	}
	out := make([]engine.DayPlan, 0, len(items))
	for _, item := range items {
		stored, ok := item.(map[string]any)
		if !ok {
			return engine.BuildPlan(skills)
		}
		day := stringField(stored, "day")
		if day == "" {
			return engine.BuildPlan(skills)
		}
		out = append(out, engine.DayPlan{
			Day:   day,
			Focus: stringField(stored, "focus", "title"),
			Tasks: uniqueStrings(stringList(firstPresent(stored, "tasks", "items"))),
		})
	}
	return out
}

func normalizeQuestions(v any, skills engine.ExtractedSkills) []string {
	questions := stringList(v)
	if len(questions) == 0 {
		return engine.BuildQuestions(skills)
	}
	return engine.FitQuestions(questions)
}

func normalizeConfidence(v any, skills engine.ExtractedSkills) map[string]engine.Confidence {
	stored, _ := v.(map[string]any)
	out := engine.DefaultConfidence(skills)
	for skill := range out {
		raw, ok := stored[skill].(string)
		if !ok {
			continue
		}
		if level := engine.Confidence(strings.ToLower(strings.TrimSpace(raw))); level.Valid() {
			out[skill] = level
		}
	}
	return out
}

// normalizeScores prefers current score names, then legacy ones. A legacy
// readinessScore is the final score only when baseReadinessScore sits beside it.
func normalizeScores(record map[string]any, entry Entry) (int, int) {
	base, ok := intField(record, "baseScore", "baseReadinessScore", "readinessScore")
	if !ok {
		base = engine.BaseScore(entry.JDText, entry.Company, entry.Role, entry.ExtractedSkills)
	}
	base = engine.ClampScore(base)

	final, ok := intField(record, "finalScore")
	if !ok {
		if _, legacyBase := record["baseReadinessScore"]; legacyBase {
			final, ok = intField(record, "readinessScore")
		}
	}
	if !ok {
		final = engine.CalculateFinalScore(base, entry.SkillConfidenceMap)
	}
	return base, engine.ClampScore(final)
}

func firstPresent(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// stringField returns the first non-blank value under keys, trimmed.
func stringField(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := scalarString(record[key]); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// verbatimField is stringField without trimming the returned value.
func verbatimField(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

func intField(record map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		switch t := record[key].(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			if !math.IsNaN(t) && !math.IsInf(t, 0) {
				return int(math.Round(t)), true
			}
		case json.Number:
			if f, err := t.Float64(); err == nil {
				return int(math.Round(f)), true
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// stringList accepts a list of strings or a single string.
func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
		return out
	case []string:
		return uniqueStrings(t)
	case string:
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			return []string{trimmed}
		}
	}
	return []string{}
}

func uniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func foldKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
