package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"prep-backend/internal/analyses/engine"
	"prep-backend/internal/shared/metrics"
	"prep-backend/internal/shared/storage/object"
	"prep-backend/internal/shared/telemetry"
	"prep-backend/internal/shared/util"
)

const (
	// ShortJDThreshold is the trimmed JD length below which analysis still runs but warns.
	ShortJDThreshold = 200
	ShortJDWarning   = "This JD is too short to analyze deeply. Paste the full JD for better output."
	reportMIMEType   = "text/plain; charset=utf-8"
)

// AnalyzeInput is the user-supplied input of one analysis.
type AnalyzeInput struct {
	JDText  string `json:"jdText"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// AnalyzeResult is a saved entry plus an optional non-blocking warning.
type AnalyzeResult struct {
	Entry   Entry
	Warning string
}

// Export is a rendered report and, when archived, its storage key.
type Export struct {
	Text       string
	FileName   string
	ArchiveKey string
}

// Service contains business logic for analyses.
type Service struct {
	History *History
	Archive object.Store
	Now     func() time.Time
	NewID   func() string
}

// NewService constructs a Service. archive may be nil.
func NewService(history *History, archive object.Store) *Service {
	return &Service{History: history, Archive: archive}
}

// Analyze runs the engine on in and saves the result as the active entry.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error) {
	trimmed := strings.TrimSpace(in.JDText)
	if trimmed == "" {
		metrics.IncAnalysesRejected()
		return AnalyzeResult{}, ErrJDRequired
	}
	company := strings.TrimSpace(in.Company)
	role := strings.TrimSpace(in.Role)

	start := time.Now()
	out := engine.AnalyzeJobDescription(in.JDText, company, role)
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))

	now := s.now().Format(time.RFC3339)
	entry, err := s.History.Save(ctx, Entry{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
		Company:   company,
		Role:      role,
		JDText:    in.JDText,
		Output:    out,
	})
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("save analysis: %w", err)
	}

	metrics.IncAnalysesCreated()
	telemetry.Info("analysis_created", map[string]any{
		"analysis_id": entry.ID,
		"skills":      len(entry.ExtractedSkills.AllSkills()),
		"base_score":  entry.BaseScore,
		"jd_chars":    utf8.RuneCountInString(trimmed),
	})

	result := AnalyzeResult{Entry: entry}
	if utf8.RuneCountInString(trimmed) < ShortJDThreshold {
		result.Warning = ShortJDWarning
	}
	return result, nil
}

// List returns the history plus the one-shot dropped-records warning.
func (s *Service) List(ctx context.Context) ([]Entry, string, error) {
	entries, err := s.History.GetHistory(ctx)
	if err != nil {
		return nil, "", err
	}
	warning, err := s.History.HistoryWarning(ctx)
	if err != nil {
		return nil, "", err
	}
	return entries, warning, nil
}

// Open returns the entry with id and marks it active. With an empty id it
// resolves the active entry, falling back to the latest when the active id is stale.
func (s *Service) Open(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	var entry Entry
	var err error
	if id != "" {
		entry, err = s.History.GetByID(ctx, id)
	} else {
		entry, err = s.current(ctx)
	}
	if err != nil {
		return Entry{}, err
	}
	if err := s.History.SetActiveID(ctx, entry.ID); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) current(ctx context.Context) (Entry, error) {
	active, err := s.History.ActiveID(ctx)
	if err != nil {
		return Entry{}, err
	}
	if active != "" {
		entry, err := s.History.GetByID(ctx, active)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return entry, err
		}
	}
	return s.History.GetLatest(ctx)
}

// Get returns the entry with id without changing the active entry.
func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.History.GetByID(ctx, id)
}

// SetConfidence records a skill self-assessment and recomputes the final score.
// The base score is never touched.
func (s *Service) SetConfidence(ctx context.Context, id, skill, level string) (Entry, error) {
	confidence := engine.Confidence(strings.ToLower(strings.TrimSpace(level)))
	if !confidence.Valid() {
		return Entry{}, ErrInvalidConfidence
	}
	skill = strings.TrimSpace(skill)
	entry, err := s.History.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if _, ok := entry.SkillConfidenceMap[skill]; !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}

	next := make(map[string]engine.Confidence, len(entry.SkillConfidenceMap))
	for k, v := range entry.SkillConfidenceMap {
		next[k] = v
	}
	next[skill] = confidence
	entry.SkillConfidenceMap = next
	entry.FinalScore = engine.CalculateFinalScore(entry.BaseScore, next)
	entry.UpdatedAt = s.now().Format(time.RFC3339)

	updated, err := s.History.Update(ctx, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("update analysis: %w", err)
	}
	metrics.IncConfidenceUpdates()
	return updated, nil
}

// Export renders the report for id, or one section of it, and archives it when an archive is configured.
func (s *Service) Export(ctx context.Context, id, section string) (Export, error) {
	entry, err := s.History.GetByID(ctx, id)
	if err != nil {
		return Export{}, err
	}

	section = strings.ToLower(strings.TrimSpace(section))
	var text string
	if section == "" {
		text = RenderReport(entry)
	} else {
		text, err = RenderSection(entry, section)
		if err != nil {
			return Export{}, err
		}
		text += "\n"
	}

	out := Export{Text: text, FileName: ExportFileName(entry, section)}
	if s.Archive != nil {
		key := reportKey(entry.ID, section, text)
		if _, err := s.Archive.Put(ctx, key, reportMIMEType, strings.NewReader(text)); err != nil {
			telemetry.Error("report_archive_failed", map[string]any{"analysis_id": entry.ID, "key": key, "error": err.Error()})
		} else {
			out.ArchiveKey = key
		}
	}
	metrics.IncExports()
	return out, nil
}

// reportKey addresses a report by content so identical exports share one object.
func reportKey(id, section, text string) string {
	if section == "" {
		section = "full"
	}
	return fmt.Sprintf("reports/%s/%s-%s.txt", util.Slug(id), section, util.HashKey(text)[:12])
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
