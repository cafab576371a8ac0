package proof

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"prep-backend/internal/shared/storage/kv"
	"prep-backend/internal/shared/telemetry"
)

// LinksKey stores the proof-of-work links as a JSON object.
const LinksKey = "prp_final_submission"

// ErrInvalidLink is returned when a non-empty link is not an http(s) URL.
var ErrInvalidLink = errors.New("link must be an http or https URL")

// Links are the artifacts submitted with the finished project.
type Links struct {
	LovableProject   string `json:"lovableProject"`
	GithubRepository string `json:"githubRepository"`
	DeployedURL      string `json:"deployedUrl"`
}

// InvalidFields names every non-empty field that is not an http(s) URL.
func (l Links) InvalidFields() []string {
	var out []string
	for _, f := range l.fields() {
		if strings.TrimSpace(f.value) != "" && !ValidHTTPURL(f.value) {
			out = append(out, f.name)
		}
	}
	return out
}

// Complete reports whether all three links are valid URLs.
func (l Links) Complete() bool {
	for _, f := range l.fields() {
		if !ValidHTTPURL(f.value) {
			return false
		}
	}
	return true
}

func (l Links) fields() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"lovableProject", l.LovableProject},
		{"githubRepository", l.GithubRepository},
		{"deployedUrl", l.DeployedURL},
	}
}

func (l Links) trimmed() Links {
	return Links{
		LovableProject:   strings.TrimSpace(l.LovableProject),
		GithubRepository: strings.TrimSpace(l.GithubRepository),
		DeployedURL:      strings.TrimSpace(l.DeployedURL),
	}
}

// ValidHTTPURL reports whether value parses as an absolute http or https URL with a host.
func ValidHTTPURL(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// SubmissionText renders the final submission block. ok is false until every link is valid.
func SubmissionText(l Links) (string, bool) {
	if !l.Complete() {
		return "", false
	}
	lines := []string{
		"------------------------------------------",
		"Placement Readiness Platform - Final Submission",
		"",
		"Lovable Project: " + l.LovableProject,
		"GitHub Repository: " + l.GithubRepository,
		"Live Deployment: " + l.DeployedURL,
		"",
		"Core Capabilities:",
		"- JD skill extraction (deterministic)",
		"- Round mapping engine",
		"- 7-day prep plan",
		"- Interactive readiness scoring",
		"- History persistence",
		"------------------------------------------",
	}
	return strings.Join(lines, "\n"), true
}

// LinkStore persists the proof links.
type LinkStore struct {
	Store kv.Store
}

// Load returns the stored links. Non-string fields and unreadable values read as empty.
func (s *LinkStore) Load(ctx context.Context) (Links, error) {
	raw, ok, err := s.Store.Get(ctx, LinksKey)
	if err != nil {
		return Links{}, fmt.Errorf("read links: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return Links{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		telemetry.Warn("links_unreadable", map[string]any{"key": LinksKey, "error": err.Error()})
		return Links{}, nil
	}
	str := func(key string) string {
		v, _ := parsed[key].(string)
		return v
	}
	return Links{
		LovableProject:   str("lovableProject"),
		GithubRepository: str("githubRepository"),
		DeployedURL:      str("deployedUrl"),
	}, nil
}

// Save trims and stores links. Empty fields are allowed; malformed ones are rejected.
func (s *LinkStore) Save(ctx context.Context, l Links) (Links, error) {
	l = l.trimmed()
	if bad := l.InvalidFields(); len(bad) > 0 {
		return Links{}, fmt.Errorf("%w: %s", ErrInvalidLink, strings.Join(bad, ", "))
	}
	encoded, err := json.Marshal(l)
	if err != nil {
		return Links{}, fmt.Errorf("encode links: %w", err)
	}
	if err := s.Store.Set(ctx, LinksKey, string(encoded)); err != nil {
		return Links{}, fmt.Errorf("write links: %w", err)
	}
	return l, nil
}
