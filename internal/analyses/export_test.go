package analyses

import (
	"errors"
	"strings"
	"testing"

	"prep-backend/internal/analyses/engine"
)

func TestRenderReportSectionOrder(t *testing.T) {
	e := sampleEntry("r1", "Amazon")
	report := RenderReport(e)

	headings := []string{
		"Placement Readiness Report",
		"Company Intel",
		"Round Mapping",
		"Key Skills Extracted",
		"Round-wise Checklist",
		"7-Day Plan",
		"Likely Interview Questions",
		"Action Next",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(report, h)
		if idx < 0 {
			t.Fatalf("missing heading %q", h)
		}
		if idx <= last {
			t.Fatalf("heading %q out of order", h)
		}
		last = idx
	}
	if !strings.HasSuffix(report, "Next step: Start Day 1 plan now.\n") {
		t.Fatalf("unexpected report ending:\n%s", report)
	}
	if !strings.Contains(report, "- Cloud/DevOps: AWS") {
		t.Fatalf("expected labelled skill category:\n%s", report)
	}
}

func TestRenderSectionWithoutCompany(t *testing.T) {
	e := sampleEntry("r2", "")
	intel, err := RenderSection(e, SectionIntel)
	if err != nil {
		t.Fatalf("RenderSection: %v", err)
	}
	if intel != "Company Intel\n- Not available (no company provided)" {
		t.Fatalf("unexpected intel section %q", intel)
	}
	summary, _ := RenderSection(e, SectionSummary)
	if !strings.Contains(summary, "Company: -\n") {
		t.Fatalf("expected dash for blank company:\n%s", summary)
	}
	if _, err := RenderSection(e, "appendix"); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestActionSectionUsesPracticeSkills(t *testing.T) {
	e := sampleEntry("r3", "Acme")
	all := e.ExtractedSkills.AllSkills()
	if len(all) < 4 {
		t.Fatalf("fixture needs at least four skills, got %v", all)
	}

	got := PracticeSkills(e, 3)
	if strings.Join(got, ",") != strings.Join(all[:3], ",") {
		t.Fatalf("expected first three skills, got %v", got)
	}

	known := make(map[string]engine.Confidence, len(all))
	for _, s := range all {
		known[s] = engine.ConfidenceKnow
	}
	e.SkillConfidenceMap = known
	action, _ := RenderSection(e, SectionAction)
	if !strings.Contains(action, "Every skill is marked as known.") {
		t.Fatalf("unexpected action section:\n%s", action)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		entry   Entry
		section string
		want    string
	}{
		{Entry{ID: "x", Company: "Acme Corp", Role: "SDE / Backend"}, "", "prep-acme-corp-sde-backend.txt"},
		{Entry{ID: "5F3A-uuid"}, "plan", "prep-5f3a-uuid-plan.txt"},
		{Entry{ID: "..."}, "", "prep-report.txt"},
	}
	for _, tc := range cases {
		if got := ExportFileName(tc.entry, tc.section); got != tc.want {
			t.Fatalf("ExportFileName(%+v, %q) = %q, want %q", tc.entry, tc.section, got, tc.want)
		}
	}
}
