// Package checklist tracks the checked state of markdown task-list items.
// State is keyed by an id derived from the item text and shared across all
// documents, so the same line in two documents shares one checkbox state.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/ziadkadry99/docreader/internal/kvstore"
)

// ErrUnknownItem is returned when toggling an id not present in the document.
var ErrUnknownItem = errors.New("checklist: unknown item")

// Item is one task-list line.
type Item struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Level   int    `json:"level"`
	Checked bool   `json:"checked"`
}

var (
	itemLine  = regexp.MustCompile(`^([ \t]*)[-*][ \t]+\[[ xX]\][ \t]+(.*)$`)
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	tabIndent = strings.Repeat(" ", 2)
)

// Parse extracts the task-list items from markdown content. The checked
// marker in the source is ignored; every parsed item starts unchecked.
func Parse(content string) []Item {
	var items []Item
	for _, line := range strings.Split(content, "\n") {
		m := itemLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		indent := strings.ReplaceAll(m[1], "\t", tabIndent)
		text := strings.TrimSpace(m[2])
		items = append(items, Item{
			ID:    ItemID(text, len(items)),
			Text:  text,
			Level: len(indent) / 2,
		})
	}
	return items
}

// ItemID derives a stable id from item text: lowercased, runs of
// non-alphanumerics collapsed to one hyphen, trimmed. Text that normalizes
// to nothing gets a positional id.
func ItemID(text string, index int) string {
	id := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(text), "-"), "-")
	if id == "" {
		return fmt.Sprintf("item-%d", index)
	}
	return id
}

// Manager holds the items of one document merged with the persisted state.
type Manager struct {
	store  kvstore.Store
	logger *slog.Logger

	mu     sync.Mutex
	items  []Item
	state  map[string]bool
	loaded bool
}

// NewManager creates a Manager persisting to store.
func NewManager(store kvstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger, state: make(map[string]bool)}
}

// Load parses content and merges in the stored checked state. Mutations
// persist only after the first Load has completed.
func (m *Manager) Load(ctx context.Context, content string) error {
	stored := make(map[string]bool)
	if _, err := kvstore.GetJSON(ctx, m.store, kvstore.KeyChecklist, &stored, m.logger); err != nil {
		return fmt.Errorf("loading checklist state: %w", err)
	}
	if stored == nil {
		stored = make(map[string]bool)
	}

	items := Parse(content)
	for i := range items {
		items[i].Checked = stored[items[i].ID]
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
	m.state = stored
	m.loaded = true
	return nil
}

// Items returns a copy of the current items.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Toggle flips every item with the given id and returns the new state.
func (m *Manager) Toggle(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	checked := !m.state[id]
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Checked = checked
			found = true
		}
	}
	if !found {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	m.state[id] = checked
	return checked, m.persistLocked(ctx)
}

// SelectAll checks every item in the document.
func (m *Manager) SelectAll(ctx context.Context) error {
	return m.setAll(ctx, true)
}

// DeselectAll unchecks every item in the document.
func (m *Manager) DeselectAll(ctx context.Context) error {
	return m.setAll(ctx, false)
}

func (m *Manager) setAll(ctx context.Context, checked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		m.items[i].Checked = checked
		m.state[m.items[i].ID] = checked
	}
	return m.persistLocked(ctx)
}

// AllChecked reports whether the document has items and all are checked.
func (m *Manager) AllChecked() bool {
	done, total := m.Progress()
	return total > 0 && done == total
}

// NoneChecked reports whether no item is checked.
func (m *Manager) NoneChecked() bool {
	done, _ := m.Progress()
	return done == 0
}

// Progress returns the number of checked items and the item count.
func (m *Manager) Progress() (done, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Checked {
			done++
		}
	}
	return done, len(m.items)
}

func (m *Manager) persistLocked(ctx context.Context) error {
	if !m.loaded {
		return nil
	}
	if err := kvstore.SetJSON(ctx, m.store, kvstore.KeyChecklist, m.state); err != nil {
		return fmt.Errorf("saving checklist state: %w", err)
	}
	return nil
}
