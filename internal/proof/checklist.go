package proof

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"prep-backend/internal/shared/storage/kv"
	"prep-backend/internal/shared/telemetry"
)

// ChecklistKey stores the ship checklist as a JSON object of item id to bool.
const ChecklistKey = "placement.testChecklist.v1"

// Item is one manual verification step.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

// Items is the fixed ship checklist, in display order.
var Items = []Item{
	{ID: "jd_required", Label: "JD required validation works", Hint: "Try submit with empty JD in Assessments."},
	{ID: "short_jd_warning", Label: "Short JD warning shows for <200 chars", Hint: "Paste a very short JD and check warning banner."},
	{ID: "skill_grouping", Label: "Skills extraction groups correctly", Hint: "Use JD with React, Node.js, SQL and verify grouped tags."},
	{ID: "round_mapping_dynamic", Label: "Round mapping changes based on company + skills", Hint: "Compare Amazon + DSA vs unknown startup + React JD."},
	{ID: "score_deterministic", Label: "Score calculation is deterministic", Hint: "Analyze same input twice and compare base score."},
	{ID: "toggle_live_score", Label: "Skill toggles update score live", Hint: "Toggle know/practice and observe final score updates instantly."},
	{ID: "persist_refresh", Label: "Changes persist after refresh", Hint: "Refresh after toggles and verify values remain."},
	{ID: "history_load_save", Label: "History saves and loads correctly", Hint: "Analyze, open History, reopen entry and verify full data."},
	{ID: "export_content", Label: "Export buttons copy the correct content", Hint: "Use copy buttons and paste into notes to verify sections."},
	{ID: "no_console_errors", Label: "No console errors on core pages", Hint: "Open DevTools console and check Landing, Assessments, Results, History."},
}

// State maps every item id to whether it passed.
type State map[string]bool

// DefaultState has every item unchecked.
func DefaultState() State {
	out := make(State, len(Items))
	for _, item := range Items {
		out[item.ID] = false
	}
	return out
}

// Merge overlays known item ids from raw onto the default state.
// Only a literal true marks an item passed.
func Merge(raw map[string]any) State {
	out := DefaultState()
	for _, item := range Items {
		if v, ok := raw[item.ID].(bool); ok && v {
			out[item.ID] = true
		}
	}
	return out
}

// Passed counts passed items.
func (s State) Passed() int {
	n := 0
	for _, item := range Items {
		if s[item.ID] {
			n++
		}
	}
	return n
}

// ShipUnlocked reports whether every item passed.
func (s State) ShipUnlocked() bool {
	return s.Passed() == len(Items)
}

// Checklist persists the ship checklist state.
type Checklist struct {
	Store kv.Store
}

// Load returns the stored state. Missing or unreadable values yield the default.
func (c *Checklist) Load(ctx context.Context) (State, error) {
	raw, ok, err := c.Store.Get(ctx, ChecklistKey)
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return DefaultState(), nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		telemetry.Warn("checklist_unreadable", map[string]any{"key": ChecklistKey, "error": err.Error()})
		return DefaultState(), nil
	}
	return Merge(parsed), nil
}

// Save stores raw merged over the default state and returns what was stored.
func (c *Checklist) Save(ctx context.Context, raw map[string]any) (State, error) {
	state := Merge(raw)
	if err := c.write(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset clears every item.
func (c *Checklist) Reset(ctx context.Context) (State, error) {
	state := DefaultState()
	if err := c.write(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (c *Checklist) write(ctx context.Context, state State) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	if err := c.Store.Set(ctx, ChecklistKey, string(encoded)); err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	return nil
}
