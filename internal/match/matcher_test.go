package match

import (
	"testing"

	"github.com/franz/setforge/internal/catalog"
	"github.com/franz/setforge/internal/model"
	"github.com/franz/setforge/internal/title"
)

// buildCatalog makes a catalog whose entries are the given titles, in order,
// so song ids are predictable (1-based).
func buildCatalog(t *testing.T, titles ...string) *catalog.Catalog {
	t.Helper()
	sessions := make([]model.SessionRecord, 0, len(titles))
	for _, name := range titles {
		sessions = append(sessions, model.SessionRecord{Session: "Test", Type: "Album", Song: name})
	}
	cat, _ := catalog.Build(title.DefaultConfig(), sessions, nil)
	if len(cat.Entries) != len(titles) {
		t.Fatalf("expected %d catalog entries, got %d", len(titles), len(cat.Entries))
	}
	return cat
}

func TestMatchSubsequence(t *testing.T) {
	cfg := title.DefaultConfig()
	cat := buildCatalog(t, "Thunder Road", "Badlands", "The River")
	m := New(cat)

	testCases := []struct {
		name       string
		query      string
		expectedID int
		expectOK   bool
	}{
		{
			name:       "exact match",
			query:      "Thunder Road",
			expectedID: 1,
			expectOK:   true,
		},
		{
			name:       "trailing qualifier",
			query:      "Thunder Road (Piano Intro)",
			expectedID: 1,
			expectOK:   true,
		},
		{
			name:       "interspersed extra tokens",
			query:      "Thunder (Tempo) Road",
			expectedID: 1,
			expectOK:   true,
		},
		{
			name:     "tokens out of order",
			query:    "Road Thunder",
			expectOK: false,
		},
		{
			name:     "unknown song",
			query:    "Some Entirely Unknown Song",
			expectOK: false,
		},
		{
			name:       "case and punctuation ignored",
			query:      "THE-RIVER!",
			expectedID: 3,
			expectOK:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := m.Match(cfg.Tokenize(tc.query))
			if ok != tc.expectOK {
				t.Fatalf("Match(%q): expected ok=%v, got ok=%v", tc.query, tc.expectOK, ok)
			}
			if ok && id != tc.expectedID {
				t.Errorf("Match(%q): expected song %d, got %d", tc.query, tc.expectedID, id)
			}
		})
	}
}

func TestMatchLongestWins(t *testing.T) {
	cfg := title.DefaultConfig()
	cat := buildCatalog(t, "Born To Run", "Born To Run 8x10")
	m := New(cat)

	id, ok := m.Match(cfg.Tokenize("Born To Run 8x10"))
	if !ok {
		t.Fatal("expected a match")
	}
	if id != 2 {
		t.Errorf("expected the 4-token entry (song 2), got song %d", id)
	}

	// The shorter entry still wins when the qualifier is absent.
	id, ok = m.Match(cfg.Tokenize("Born To Run"))
	if !ok || id != 1 {
		t.Errorf("expected song 1, got %d (ok=%v)", id, ok)
	}
}

func TestMatchTieBreakLowestID(t *testing.T) {
	// Two 2-token entries both contained in the query: the lower song id
	// must win, and keep winning on reruns.
	cfg := title.DefaultConfig()
	cat := buildCatalog(t, "Sweet Soul", "Detroit Medley")
	m := New(cat)

	for i := 0; i < 10; i++ {
		id, ok := m.Match(cfg.Tokenize("Detroit Medley / Sweet Soul"))
		if !ok {
			t.Fatal("expected a match")
		}
		if id != 1 {
			t.Fatalf("run %d: expected song 1 (first seen), got %d", i, id)
		}
	}
}

func TestMatchEmptyQuery(t *testing.T) {
	cat := buildCatalog(t, "Thunder Road")
	m := New(cat)

	if _, ok := m.Match(nil); ok {
		t.Error("empty query must not match")
	}
	if _, ok := m.Match([]string{}); ok {
		t.Error("empty query must not match")
	}
}

func TestIsSubsequence(t *testing.T) {
	testCases := []struct {
		name     string
		needle   []string
		haystack []string
		expected bool
	}{
		{"empty needle", nil, []string{"a", "b"}, true},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, true},
		{"gap in middle", []string{"a", "c"}, []string{"a", "b", "c"}, true},
		{"wrong order", []string{"b", "a"}, []string{"a", "b"}, false},
		{"needle longer", []string{"a", "b", "c"}, []string{"a", "b"}, false},
		{"duplicate tokens needed", []string{"a", "a"}, []string{"a", "b", "a"}, true},
		{"duplicate tokens missing", []string{"a", "a"}, []string{"a", "b"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isSubsequence(tc.needle, tc.haystack)
			if result != tc.expected {
				t.Errorf("isSubsequence(%v, %v): expected %v, got %v",
					tc.needle, tc.haystack, tc.expected, result)
			}
		})
	}
}
