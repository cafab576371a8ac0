package analyses

import "prep-backend/internal/analyses/engine"

// Entry is one persisted analysis: the engine output plus identity and input.
type Entry struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	JDText    string `json:"jdText"`
	engine.Output
}

// Summary is the compact history row returned by list endpoints.
type Summary struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"createdAt"`
	Company    string `json:"company"`
	Role       string `json:"role"`
	BaseScore  int    `json:"baseScore"`
	FinalScore int    `json:"finalScore"`
}

// Summarize returns the history row for e.
func (e Entry) Summarize() Summary {
	return Summary{
		ID:         e.ID,
		CreatedAt:  e.CreatedAt,
		Company:    e.Company,
		Role:       e.Role,
		BaseScore:  e.BaseScore,
		FinalScore: e.FinalScore,
	}
}
