package analyses

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"prep-backend/internal/analyses/engine"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

const legacyJD = "Looking for a Java developer with DSA, OOP, SQL and AWS experience. React is a plus."

// legacyRecord is the shape older clients stored: display-name skill
// categories, checklist rounds under "round", plan tasks under "items" and a
// single readinessScore.
func legacyRecord() map[string]any {
	return map[string]any{
		"id":        "legacy-1",
		"createdAt": "2025-11-04T10:00:00.000Z",
		"company":   "Amazon",
		"role":      "SDE 1",
		"jdText":    legacyJD,
		"extractedSkills": map[string]any{
			"Core CS":      []any{"DSA", "OOP"},
			"Languages":    []any{"Java"},
			"Web":          []any{"React"},
			"Data":         []any{"SQL"},
			"Cloud/DevOps": []any{"AWS"},
			"Testing":      []any{},
			"General":      []any{},
		},
		"checklist": []any{
			map[string]any{"round": "Round 1: Aptitude / Basics", "items": []any{"Practice aptitude", "Practice aptitude"}},
			map[string]any{"round": "Round 2: DSA + Core CS", "items": []any{"Arrays"}},
			map[string]any{"round": "Round 3: Tech interview (projects + stack)", "items": []any{"Explain project"}},
			map[string]any{"round": "Round 4: Managerial / HR", "items": []any{"STAR stories"}},
		},
		"plan": []any{
			map[string]any{"day": "Day 1-2", "focus": "Basics", "items": []any{"Revise OOP"}},
			map[string]any{"day": "Day 3-4", "focus": "DSA", "items": []any{"Arrays"}},
			map[string]any{"day": "Day 5", "focus": "Projects", "items": []any{"Resume"}},
			map[string]any{"day": "Day 6", "focus": "Mock", "items": []any{"Mock interview"}},
			map[string]any{"day": "Day 7", "focus": "Revision", "items": []any{"Weak areas"}},
		},
		"questions":      []any{"Explain HashMap internals."},
		"readinessScore": 72,
	}
}

func TestNormalizeLegacyRecord(t *testing.T) {
	entry, ok := normalizeEntry(legacyRecord(), fixedNow)
	if !ok {
		t.Fatalf("expected legacy record to normalize")
	}
	if entry.CreatedAt != "2025-11-04T10:00:00.000Z" || entry.UpdatedAt != entry.CreatedAt {
		t.Fatalf("unexpected timestamps %q %q", entry.CreatedAt, entry.UpdatedAt)
	}
	if !reflect.DeepEqual(entry.ExtractedSkills.CoreCS, []string{"DSA", "OOP"}) {
		t.Fatalf("unexpected coreCS %v", entry.ExtractedSkills.CoreCS)
	}
	if !reflect.DeepEqual(entry.ExtractedSkills.Cloud, []string{"AWS"}) {
		t.Fatalf("unexpected cloud %v", entry.ExtractedSkills.Cloud)
	}
	if entry.CompanyIntel == nil || entry.CompanyIntel.SizeCategory != engine.SizeEnterprise {
		t.Fatalf("expected derived enterprise intel, got %+v", entry.CompanyIntel)
	}
	if len(entry.RoundMapping) < engine.MinRoundMappingLength {
		t.Fatalf("expected derived round mapping, got %d rounds", len(entry.RoundMapping))
	}
	if entry.Checklist[0].RoundTitle != "Round 1: Aptitude / Basics" {
		t.Fatalf("expected stored checklist titles, got %q", entry.Checklist[0].RoundTitle)
	}
	if !reflect.DeepEqual(entry.Checklist[0].Items, []string{"Practice aptitude"}) {
		t.Fatalf("expected deduped checklist items, got %v", entry.Checklist[0].Items)
	}
	if len(entry.Plan7Days) != len(engine.PlanDays) || entry.Plan7Days[1].Tasks[0] != "Arrays" {
		t.Fatalf("unexpected plan %+v", entry.Plan7Days)
	}
	if len(entry.Questions) != engine.QuestionCount || entry.Questions[0] != "Explain HashMap internals." {
		t.Fatalf("expected stored question first and padded list, got %v", entry.Questions)
	}
	if entry.BaseScore != 72 {
		t.Fatalf("expected legacy readinessScore as base, got %d", entry.BaseScore)
	}
	if want := engine.CalculateFinalScore(72, entry.SkillConfidenceMap); entry.FinalScore != want {
		t.Fatalf("expected final %d, got %d", want, entry.FinalScore)
	}
	for skill, level := range entry.SkillConfidenceMap {
		if level != engine.ConfidencePractice {
			t.Fatalf("expected %s to default to practice, got %s", skill, level)
		}
	}
}

func TestNormalizeLegacyScorePair(t *testing.T) {
	record := legacyRecord()
	record["baseReadinessScore"] = 60
	record["readinessScore"] = 64
	entry, ok := normalizeEntry(record, fixedNow)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if entry.BaseScore != 60 || entry.FinalScore != 64 {
		t.Fatalf("expected base 60 final 64, got %d %d", entry.BaseScore, entry.FinalScore)
	}
}

func TestNormalizeRejectsUnrecoverable(t *testing.T) {
	cases := map[string]any{
		"nil":        nil,
		"number":     json.RawMessage(`42`),
		"array":      json.RawMessage(`[1,2]`),
		"no id":      map[string]any{"jdText": legacyJD},
		"blank jd":   map[string]any{"id": "x", "jdText": "   "},
		"jd non-str": map[string]any{"id": "x", "jdText": 12},
	}
	for name, raw := range cases {
		if _, ok := normalizeEntry(raw, fixedNow); ok {
			t.Fatalf("%s: expected record to be rejected", name)
		}
	}
}

func TestNormalizeFieldAliasesAndTimestamps(t *testing.T) {
	raw := json.RawMessage(`{"id": 1700, "jobDescription": "  React and Node.js role  ", "companyName": "", "jobTitle": "Frontend", "updatedAt": 1700000000000}`)
	entry, ok := normalizeEntry(raw, fixedNow)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if entry.ID != "1700" {
		t.Fatalf("expected numeric id to be stringified, got %q", entry.ID)
	}
	if entry.JDText != "  React and Node.js role  " {
		t.Fatalf("expected jdText kept verbatim, got %q", entry.JDText)
	}
	if entry.Role != "Frontend" || entry.CompanyIntel != nil {
		t.Fatalf("unexpected role/intel %q %+v", entry.Role, entry.CompanyIntel)
	}
	if entry.CreatedAt != "2023-11-14T22:13:20Z" || entry.UpdatedAt != entry.CreatedAt {
		t.Fatalf("unexpected timestamps %q %q", entry.CreatedAt, entry.UpdatedAt)
	}
	if !entry.ExtractedSkills.Has(engine.CategoryWeb, "React") {
		t.Fatalf("expected skills re-extracted from jdText, got %+v", entry.ExtractedSkills)
	}
}

func TestNormalizeMissingTimestampsUseNow(t *testing.T) {
	entry, ok := normalizeEntry(map[string]any{"id": "a", "jdText": legacyJD, "createdAt": "yesterday"}, fixedNow)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if entry.CreatedAt != "2026-03-01T09:30:00Z" || entry.UpdatedAt != entry.CreatedAt {
		t.Fatalf("unexpected timestamps %q %q", entry.CreatedAt, entry.UpdatedAt)
	}
}

func TestNormalizeEmptySkillsUseFallback(t *testing.T) {
	record := map[string]any{
		"id":              "a",
		"jdText":          legacyJD,
		"extractedSkills": map[string]any{"coreCS": []any{}, "web": []any{}},
	}
	entry, ok := normalizeEntry(record, fixedNow)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if !reflect.DeepEqual(entry.ExtractedSkills.Other, engine.FallbackOtherSkills()) {
		t.Fatalf("expected fallback skills, got %v", entry.ExtractedSkills.Other)
	}
	if len(entry.ExtractedSkills.TechnicalSkills()) != 0 {
		t.Fatalf("stored empty categories must not be re-extracted")
	}
}

func TestNormalizeUnknownSkillShapeReextracts(t *testing.T) {
	record := map[string]any{
		"id":              "a",
		"jdText":          legacyJD,
		"extractedSkills": map[string]any{"frameworks": []any{"Spring"}},
	}
	entry, _ := normalizeEntry(record, fixedNow)
	if !entry.ExtractedSkills.Has(engine.CategoryLanguages, "Java") {
		t.Fatalf("expected re-extraction, got %+v", entry.ExtractedSkills)
	}
}

func TestNormalizeRepairsRoundsAndIntel(t *testing.T) {
	record := legacyRecord()
	record["roundMapping"] = []any{
		map[string]any{"roundTitle": "Online Test", "focus": "DSA, aptitude"},
		map[string]any{"focusAreas": []any{"Projects"}},
		map[string]any{"roundTitle": "HR"},
	}
	record["companyIntel"] = map[string]any{"industry": "Space Mining", "sizeCategory": "Huge"}
	entry, _ := normalizeEntry(record, fixedNow)

	derived := engine.DeriveRoundMapping(entry.ExtractedSkills, entry.CompanyIntel)
	if !reflect.DeepEqual(entry.RoundMapping, derived) {
		t.Fatalf("expected rounds re-derived when a title is missing")
	}
	if entry.CompanyIntel.CompanyName != "Amazon" || entry.CompanyIntel.SizeCategory != engine.SizeEnterprise {
		t.Fatalf("expected repaired intel, got %+v", entry.CompanyIntel)
	}
	if !engine.ValidIndustry(entry.CompanyIntel.Industry) || entry.CompanyIntel.Note == "" {
		t.Fatalf("expected repaired industry and note, got %+v", entry.CompanyIntel)
	}

	record["roundMapping"] = []any{
		map[string]any{"round": "Online Test", "focus": "DSA, aptitude", "whyThisRoundMatters": "Filters"},
		map[string]any{"title": "Technical", "focusAreas": []any{"Projects", "Projects"}},
		map[string]any{"roundTitle": "HR", "why": "Fit"},
	}
	entry, _ = normalizeEntry(record, fixedNow)
	if entry.RoundMapping[0].RoundTitle != "Online Test" || entry.RoundMapping[0].WhyItMatters != "Filters" {
		t.Fatalf("expected stored rounds kept, got %+v", entry.RoundMapping[0])
	}
	if !reflect.DeepEqual(entry.RoundMapping[0].FocusAreas, []string{"DSA, aptitude"}) {
		t.Fatalf("expected legacy focus as one area, got %v", entry.RoundMapping[0].FocusAreas)
	}
	if !reflect.DeepEqual(entry.RoundMapping[1].FocusAreas, []string{"Projects"}) {
		t.Fatalf("expected deduped focus areas, got %v", entry.RoundMapping[1].FocusAreas)
	}
}

func TestNormalizeKeepsValidConfidence(t *testing.T) {
	record := legacyRecord()
	record["skillConfidenceMap"] = map[string]any{"Java": "KNOW", "AWS": "maybe", "Rust": "know"}
	entry, _ := normalizeEntry(record, fixedNow)
	if entry.SkillConfidenceMap["Java"] != engine.ConfidenceKnow {
		t.Fatalf("expected Java know, got %s", entry.SkillConfidenceMap["Java"])
	}
	if entry.SkillConfidenceMap["AWS"] != engine.ConfidencePractice {
		t.Fatalf("expected invalid level to default, got %s", entry.SkillConfidenceMap["AWS"])
	}
	if _, ok := entry.SkillConfidenceMap["Rust"]; ok {
		t.Fatalf("confidence for undetected skills must be dropped")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []any{
		legacyRecord(),
		Entry{ID: "fresh", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z", Company: "Razorpay", Role: "SDE",
			JDText: legacyJD, Output: engine.AnalyzeJobDescription(legacyJD, "Razorpay", "SDE")},
		Entry{ID: "generic", JDText: "We want a motivated graduate who communicates well.",
			Output: engine.AnalyzeJobDescription("We want a motivated graduate who communicates well.", "", "")},
	}
	for i, in := range inputs {
		once, ok := normalizeEntry(in, fixedNow)
		if !ok {
			t.Fatalf("case %d: expected normalize to succeed", i)
		}
		twice, ok := normalizeEntry(once, fixedNow.Add(time.Hour))
		if !ok {
			t.Fatalf("case %d: expected second normalize to succeed", i)
		}
		if !reflect.DeepEqual(once, twice) {
			a, _ := json.Marshal(once)
			b, _ := json.Marshal(twice)
			t.Fatalf("case %d: normalize not idempotent\nonce:  %s\ntwice: %s", i, a, b)
		}
	}
}

func TestNormalizeEntryExported(t *testing.T) {
	entry, ok := NormalizeEntry(`{"id":"s","jdText":"Python and Django"}`)
	if !ok || entry.ID != "s" {
		t.Fatalf("expected string input to normalize, got %+v %v", entry, ok)
	}
	if _, err := time.Parse(time.RFC3339, entry.CreatedAt); err != nil {
		t.Fatalf("expected RFC3339 createdAt, got %q", entry.CreatedAt)
	}
	if !strings.Contains(strings.Join(entry.ExtractedSkills.Languages, ","), "Python") {
		t.Fatalf("expected Python detected, got %v", entry.ExtractedSkills.Languages)
	}
}
