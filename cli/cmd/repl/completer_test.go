package repl

import "testing"

func TestWordBounds_FlowPunctuation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_space", "a f", 3, "f", 2, 3},
		{"after_arrow", "a > f", 5, "f", 4, 5},
		{"after_double_arrow", "a >> f", 6, "f", 5, 6},
		{"after_pipe", "a |f", 4, "f", 3, 4},
		{"after_colon", "a |:f", 5, "f", 4, 5},
		{"after_comma", "a, f", 4, "f", 3, 4},
		{"after_equals", "n=f", 3, "f", 2, 3},
		{"empty_at_boundary", "a > ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		// Hyphens are part of identifiers, not word boundaries.
		{"hyphenated", "worker-one", 10, "worker-one", 0, 10},
		{"hyphenated_partial", "worker-on", 9, "worker-on", 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestNamedCandidates(t *testing.T) {
	wf := &workflowView{
		pipes:   []string{"a", "b", "a"},
		workers: []string{"f", "g"},
	}

	got := namedCandidates(wf)

	want := map[string]bool{"a": true, "b": true, "f": true, "g": true}
	if len(got) != len(want) {
		t.Fatalf("namedCandidates() = %v, want %d distinct names", got, len(want))
	}

	for _, name := range got {
		if !want[name] {
			t.Errorf("namedCandidates() contains unexpected name %q", name)
		}
	}
}

func TestNamedCandidatesNilWorkflow(t *testing.T) {
	if got := namedCandidates(nil); got != nil {
		t.Errorf("namedCandidates(nil) = %v, want nil", got)
	}
}
