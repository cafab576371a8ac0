package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"prep-backend/internal/shared/metrics"
	"prep-backend/internal/shared/storage/kv"
	"prep-backend/internal/shared/telemetry"
)

// Storage keys. Values written under these keys stay readable by older clients.
const (
	HistoryKey  = "placement.analysis.history.v1"
	ActiveIDKey = "placement.analysis.activeId.v1"
	// DroppedKey counts records removed from history and not yet reported.
	DroppedKey = "placement.analysis.dropped.v1"
)

// History persists analysis entries, newest first, plus the active entry id.
// Every read normalizes stored records into the current Entry shape.
type History struct {
	Store kv.Store
	Now   func() time.Time

	mu sync.Mutex
}

// NewHistory constructs a History over store.
func NewHistory(store kv.Store) *History {
	return &History{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// GetHistory returns every recoverable entry, newest first.
// Unrecoverable records are removed from the store and counted for HistoryWarning.
func (h *History) GetHistory(ctx context.Context) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// HistoryWarning returns the advisory for records dropped since the last call, then clears it.
// The pending count lives in the store, so a drop seen by one process is reported by the next.
func (h *History) HistoryWarning(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, err := h.pendingDropped(ctx)
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", nil
	}
	if err := h.Store.Delete(ctx, DroppedKey); err != nil {
		return "", fmt.Errorf("clear dropped count: %w", err)
	}
	if n == 1 {
		return "1 saved entry couldn't be loaded and was removed from history.", nil
	}
	return fmt.Sprintf("%d saved entries couldn't be loaded and were removed from history.", n), nil
}

// Save normalizes entry, moves it to the head of history and marks it active.
func (h *History) Save(ctx context.Context, entry Entry) (Entry, error) {
	normalized, ok := normalizeEntry(entry, h.now())
	if !ok {
		return Entry{}, ErrInvalidEntry
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	next := make([]Entry, 0, len(entries)+1)
	next = append(next, normalized)
	for _, existing := range entries {
		if existing.ID != normalized.ID {
			next = append(next, existing)
		}
	}
	if err := h.write(ctx, next); err != nil {
		return Entry{}, err
	}
	if err := h.setActive(ctx, normalized.ID); err != nil {
		return Entry{}, err
	}
	return normalized, nil
}

// Update normalizes entry and replaces it in place, or inserts it at the head when absent.
func (h *History) Update(ctx context.Context, entry Entry) (Entry, error) {
	normalized, ok := normalizeEntry(entry, h.now())
	if !ok {
		return Entry{}, ErrInvalidEntry
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == normalized.ID {
			entries[i] = normalized
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append([]Entry{normalized}, entries...)
	}
	if err := h.write(ctx, entries); err != nil {
		return Entry{}, err
	}
	if err := h.setActive(ctx, normalized.ID); err != nil {
		return Entry{}, err
	}
	return normalized, nil
}

// SetActiveID records id as the active entry.
func (h *History) SetActiveID(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.setActive(ctx, id)
}

// ActiveID returns the active entry id, or "" when none is stored.
func (h *History) ActiveID(ctx context.Context) (string, error) {
	value, ok, err := h.Store.Get(ctx, ActiveIDKey)
	if err != nil {
		return "", fmt.Errorf("read active id: %w", err)
	}
	if !ok {
		return "", nil
	}
	return parseActiveID(value), nil
}

// GetByID returns the entry with id.
func (h *History) GetByID(ctx context.Context, id string) (Entry, error) {
	entries, err := h.GetHistory(ctx)
	if err != nil {
		return Entry{}, err
	}
	id = strings.TrimSpace(id)
	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Entry{}, ErrNotFound
}

// GetLatest returns the newest entry.
func (h *History) GetLatest(ctx context.Context) (Entry, error) {
	entries, err := h.GetHistory(ctx)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

// load reads and normalizes history. Callers hold h.mu.
func (h *History) load(ctx context.Context) ([]Entry, error) {
	raw, ok, err := h.Store.Get(ctx, HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Entry{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		telemetry.Warn("history_unreadable", map[string]any{"key": HistoryKey, "error": err.Error()})
		return []Entry{}, nil
	}

	now := h.now()
	entries := make([]Entry, 0, len(records))
	dropped := 0
	for _, record := range records {
		entry, ok := normalizeEntry(record, now)
		if !ok {
			dropped++
			continue
		}
		entries = append(entries, entry)
	}

	if dropped > 0 {
		pending, err := h.pendingDropped(ctx)
		if err != nil {
			return nil, err
		}
		if err := h.Store.Set(ctx, DroppedKey, strconv.Itoa(pending+dropped)); err != nil {
			return nil, fmt.Errorf("write dropped count: %w", err)
		}
		metrics.AddHistoryDropped(dropped)
		telemetry.Warn("history_records_dropped", map[string]any{"dropped": dropped, "kept": len(entries)})
	}
	if dropped > 0 || h.migrated(raw, entries) {
		if err := h.write(ctx, entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// migrated reports whether the stored text differs from the canonical encoding of entries.
func (h *History) migrated(raw string, entries []Entry) bool {
	encoded, err := json.Marshal(entries)
	if err != nil {
		return false
	}
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, []byte(raw)); err != nil {
		return true
	}
	return !bytes.Equal(compacted.Bytes(), encoded)
}

func (h *History) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := h.Store.Set(ctx, HistoryKey, string(encoded)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// pendingDropped reads the unreported dropped count. Callers hold h.mu.
func (h *History) pendingDropped(ctx context.Context) (int, error) {
	raw, ok, err := h.Store.Get(ctx, DroppedKey)
	if err != nil {
		return 0, fmt.Errorf("read dropped count: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (h *History) setActive(ctx context.Context, id string) error {
	if err := h.Store.Set(ctx, ActiveIDKey, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("write active id: %w", err)
	}
	return nil
}

func (h *History) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// parseActiveID accepts a plain id or a JSON-encoded string.
func parseActiveID(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, `"`) {
		var decoded string
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			return strings.TrimSpace(decoded)
		}
		return ""
	}
	return value
}
