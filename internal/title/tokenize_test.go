package title

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cfg := DefaultConfig()

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain title",
			input:    "Thunder Road",
			expected: []string{"thunder", "road"},
		},
		{
			name:     "parenthesized qualifier",
			input:    "Thunder Road (Solo Piano)",
			expected: []string{"thunder", "road", "solo", "piano"},
		},
		{
			name:     "dotted abbreviation",
			input:    "Born in the U.S.A.",
			expected: []string{"born", "in", "the", "usa"},
		},
		{
			name:     "plain abbreviation",
			input:    "Born In The USA",
			expected: []string{"born", "in", "the", "usa"},
		},
		{
			name:     "dashes and shouting",
			input:    "BORN-IN-THE-USA!",
			expected: []string{"born", "in", "the", "usa"},
		},
		{
			name:     "ampersand becomes and",
			input:    "Rock & Roll",
			expected: []string{"rock", "and", "roll"},
		},
		{
			name:     "plus becomes and",
			input:    "Rock + Roll",
			expected: []string{"rock", "and", "roll"},
		},
		{
			name:     "internal apostrophe kept",
			input:    "She's Leaving",
			expected: []string{"she's", "leaving"},
		},
		{
			name:     "trailing apostrophe trimmed",
			input:    "Workin' On A Dream",
			expected: []string{"workin", "on", "a", "dream"},
		},
		{
			name:     "leading apostrophe trimmed",
			input:    "'Round Midnight",
			expected: []string{"round", "midnight"},
		},
		{
			name:     "slash separated",
			input:    "Detroit Medley/Sweet Soul Music",
			expected: []string{"detroit", "medley", "sweet", "soul", "music"},
		},
		{
			name:     "colon and quotes stripped",
			input:    `She's The One: "Live"`,
			expected: []string{"she's", "the", "one", "live"},
		},
		{
			name:     "brackets become spaces",
			input:    "Badlands [Snippet]",
			expected: []string{"badlands", "snippet"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "punctuation only",
			input:    "?!...",
			expected: nil,
		},
		{
			name:     "numbers survive",
			input:    "10th Avenue Freeze-Out",
			expected: []string{"10th", "avenue", "freeze", "out"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := cfg.Tokenize(tc.input)
			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("Tokenize(%q): expected %v, got %v", tc.input, tc.expected, result)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	inputs := []string{
		"Thunder Road (Solo Piano)",
		"Born in the U.S.A.",
		"Rosalita (Come Out Tonight)",
		"4th Of July, Asbury Park (Sandy)",
	}
	for _, input := range inputs {
		first := cfg.Tokenize(input)
		second := cfg.Tokenize(input)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Tokenize(%q) not deterministic: %v then %v", input, first, second)
		}
	}
}

func TestTokenizePunctuationInvariance(t *testing.T) {
	cfg := DefaultConfig()
	variants := []string{
		"Born in the U.S.A.",
		"Born In The USA",
		"BORN-IN-THE-USA!",
		"born in the usa",
	}
	reference := cfg.Tokenize(variants[0])
	for _, v := range variants[1:] {
		if !reflect.DeepEqual(cfg.Tokenize(v), reference) {
			t.Errorf("Tokenize(%q) = %v, expected %v", v, cfg.Tokenize(v), reference)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key([]string{"thunder", "road"}); got != "thunder road" {
		t.Errorf("Expected %q, got %q", "thunder road", got)
	}
	if got := Key(nil); got != "" {
		t.Errorf("Expected empty key, got %q", got)
	}
}
