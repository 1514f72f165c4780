package agent

import (
	"strings"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello there", "hello there"},
		{"asterisks removed", "this is *very* **important**", "this is very important"},
		{"hashes removed", "# Heading\n## Sub", " Heading\n Sub"},
		{"mixed markers", "*a* #b# c", "a b c"},
		{"other punctuation preserved", "1. a_b-c (d)!", "1. a_b-c (d)!"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkdownIsIdempotent(t *testing.T) {
	in := "# Title with *emphasis* and **bold** text."
	once := StripMarkdown(in)
	if twice := StripMarkdown(once); twice != once {
		t.Fatalf("stripping twice changed output: %q vs %q", once, twice)
	}
}

func TestShapeForSpeechShortTextUnchanged(t *testing.T) {
	in := strings.Repeat("a", speechCharBudget)
	if got := ShapeForSpeech(in); got != in {
		t.Fatalf("text within budget was modified")
	}
}

func TestShapeForSpeechTruncatesAtSentenceBoundary(t *testing.T) {
	// A period well inside the cut range, then filler past the budget.
	head := strings.Repeat("b", 100) + "."
	in := head + strings.Repeat("c", speechCharBudget)

	got := ShapeForSpeech(in)
	want := head + truncationNotice
	if got != want {
		t.Fatalf("expected cut at sentence boundary, got %d chars ending %q", len(got), got[len(got)-20:])
	}
}

func TestShapeForSpeechHardCutWithoutPeriod(t *testing.T) {
	// Scenario: a 5000-char reply with no periods anywhere.
	in := strings.Repeat("x", 5000)

	got := ShapeForSpeech(in)
	cut := speechCharBudget - len([]rune(truncationNotice))
	want := strings.Repeat("x", cut) + truncationNotice
	if got != want {
		t.Fatalf("expected hard cut of %d chars plus notice, got %d chars", cut, len(got))
	}
}

func TestShapeForSpeechLengthBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("word. ", 1000),
		strings.Repeat("y", 10000),
		strings.Repeat("z", speechCharBudget+1),
	}
	for _, in := range inputs {
		got := ShapeForSpeech(in)
		if len([]rune(got)) > speechCharBudget+len([]rune(truncationNotice)) {
			t.Fatalf("shaped output exceeds bound: %d chars", len([]rune(got)))
		}
		if !strings.HasSuffix(got, truncationNotice) {
			t.Fatalf("truncated output does not end with notice")
		}
	}
}

func TestShapeForSpeechStripsBeforeMeasuring(t *testing.T) {
	// Markers are removed first, so a text only over budget because of
	// asterisks is not truncated.
	in := strings.Repeat("a", speechCharBudget-10) + strings.Repeat("*", 100)
	got := ShapeForSpeech(in)
	if strings.HasSuffix(got, truncationNotice) {
		t.Fatalf("text within post-strip budget was truncated")
	}
	if got != strings.Repeat("a", speechCharBudget-10) {
		t.Fatalf("unexpected shaped output")
	}
}
