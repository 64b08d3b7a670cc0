package checklist

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/docreader/internal/kvstore"
)

const doc = `# Launch

- [ ] Write the docs
- [x] Ship it!
  - [ ] Tell   everyone
* [ ] ???
- not a task
`

func TestParse(t *testing.T) {
	items := Parse(doc)
	want := []Item{
		{ID: "write-the-docs", Text: "Write the docs", Level: 0},
		{ID: "ship-it", Text: "Ship it!", Level: 0},
		{ID: "tell-everyone", Text: "Tell   everyone", Level: 1},
		{ID: "item-3", Text: "???", Level: 0},
	}
	if len(items) != len(want) {
		t.Fatalf("Parse() returned %d items, want %d: %+v", len(items), len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestItemIDStableAcrossEdits(t *testing.T) {
	before := Parse("- [ ] Deploy API\n")
	after := Parse("# Intro\n\nSome text.\n\n- [ ] Other\n- [ ] Deploy API\n")
	if before[0].ID != after[1].ID {
		t.Errorf("id changed: %q vs %q", before[0].ID, after[1].ID)
	}
}

func load(t *testing.T, store kvstore.Store, content string) *Manager {
	t.Helper()
	m := NewManager(store, nil)
	if err := m.Load(context.Background(), content); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	m := load(t, store, doc)

	checked, err := m.Toggle(ctx, "ship-it")
	if err != nil || !checked {
		t.Fatalf("Toggle = %v, %v; want true", checked, err)
	}

	again := load(t, store, doc)
	for _, it := range again.Items() {
		if it.ID == "ship-it" && !it.Checked {
			t.Error("toggled state not restored")
		}
		if it.ID != "ship-it" && it.Checked {
			t.Errorf("%s unexpectedly checked", it.ID)
		}
	}

	if _, err := m.Toggle(ctx, "nope"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Toggle(nope) error = %v, want ErrUnknownItem", err)
	}
}

func TestSelectAllIdempotent(t *testing.T) {
	ctx := context.Background()
	m := load(t, kvstore.NewMemoryStore(), doc)

	if !m.NoneChecked() || m.AllChecked() {
		t.Fatal("fresh manager should have nothing checked")
	}
	for i := 0; i < 2; i++ {
		if err := m.SelectAll(ctx); err != nil {
			t.Fatalf("SelectAll: %v", err)
		}
		if !m.AllChecked() {
			t.Errorf("after SelectAll #%d not all checked", i+1)
		}
	}
	if done, total := m.Progress(); done != 4 || total != 4 {
		t.Errorf("Progress = %d/%d, want 4/4", done, total)
	}
	if err := m.DeselectAll(ctx); err != nil {
		t.Fatalf("DeselectAll: %v", err)
	}
	if !m.NoneChecked() {
		t.Error("DeselectAll left items checked")
	}
}

func TestStateSharedAcrossDocuments(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	a := load(t, store, "- [ ] Backup database\n- [ ] Only in A\n")
	if _, err := a.Toggle(ctx, "only-in-a"); err != nil {
		t.Fatal(err)
	}
	b := load(t, store, "- [ ] Backup database\n")
	if _, err := b.Toggle(ctx, "backup-database"); err != nil {
		t.Fatal(err)
	}

	// Reloading A sees both: B's write kept A's entry in the stored map.
	again := load(t, store, "- [ ] Backup database\n- [ ] Only in A\n")
	if !again.AllChecked() {
		t.Errorf("items = %+v, want all checked", again.Items())
	}
}

func TestNoPersistBeforeLoad(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	kvstore.SetJSON(ctx, store, kvstore.KeyChecklist, map[string]bool{"keep": true})

	m := NewManager(store, nil)
	if err := m.DeselectAll(ctx); err != nil {
		t.Fatal(err)
	}
	var stored map[string]bool
	kvstore.GetJSON(ctx, store, kvstore.KeyChecklist, &stored, nil)
	if !stored["keep"] || len(stored) != 1 {
		t.Errorf("stored = %v, want untouched", stored)
	}
}

func TestMalformedStoredStateIgnored(t *testing.T) {
	store := kvstore.NewMemoryStore()
	store.Set(context.Background(), kvstore.KeyChecklist, "[[[")
	m := load(t, store, doc)
	if !m.NoneChecked() {
		t.Error("malformed state should load as empty")
	}
	if _, err := m.Toggle(context.Background(), "write-the-docs"); err != nil {
		t.Errorf("Toggle after malformed load: %v", err)
	}
}
