package sanitize_test

import (
	"strings"
	"testing"

	"github.com/intervu-ai/backend/internal/sanitize"
)

func TestResponse_RemovesThinkSpans(t *testing.T) {
	out := sanitize.Response("A<think>hidden deliberation</think>B")

	if out != "AB" {
		t.Errorf("expected %q, got %q", "AB", out)
	}
	if strings.Contains(out, "think") || strings.Contains(out, "hidden") {
		t.Errorf("reasoning markup leaked into output: %q", out)
	}
}

func TestResponse_RemovesMultilineThinkSpans(t *testing.T) {
	raw := "Before <think>line one\nline two\nline three</think> after"
	out := sanitize.Response(raw)

	if strings.Contains(out, "line") {
		t.Errorf("multiline think span leaked: %q", out)
	}
	if out != "Before after" {
		t.Errorf("expected %q, got %q", "Before after", out)
	}
}

func TestResponse_RemovesLeftoverTags(t *testing.T) {
	out := sanitize.Response("a <b>bold</b> claim")

	if out != "a bold claim" {
		t.Errorf("expected %q, got %q", "a bold claim", out)
	}
}

func TestResponse_StripsMarkdownBold(t *testing.T) {
	out := sanitize.Response("**Score**: 85 with **strong** areas")

	if strings.Contains(out, "**") {
		t.Errorf("bold markers survived: %q", out)
	}
	if !strings.Contains(out, "Score: 85") {
		t.Errorf("expected unwrapped label, got %q", out)
	}
}

func TestResponse_NormalizesBullets(t *testing.T) {
	out := sanitize.Response("-   first point\n-\tsecond point")

	if !strings.Contains(out, "- first point") || !strings.Contains(out, "- second point") {
		t.Errorf("bullet spacing not normalized: %q", out)
	}
}

func TestResponse_RestoresSectionBreaks(t *testing.T) {
	out := sanitize.Response("1. Score: 85 2. Strengths: clear explanation 3. Areas: depth")

	for _, label := range []string{"\n1. Score:", "\n2. Strengths:", "\n3. Areas:"} {
		if !strings.Contains(out, label) {
			t.Errorf("expected line break before %q in %q", strings.TrimPrefix(label, "\n"), out)
		}
	}
}

func TestResponse_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"already clean",
		"A<think>hidden</think>B",
		"**bold** and -   bullets",
		"1. Score: 85 2. Strengths: good 3. Overall: fine",
		"  lots\n\n of \t whitespace  ",
		`quoted "question here" text`,
	}

	for _, in := range inputs {
		once := sanitize.Response(in)
		twice := sanitize.Response(once)
		if once != twice {
			t.Errorf("Response not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestQuestion_PrefersQuotedSubstring(t *testing.T) {
	out := sanitize.Question(`Here is one: "What is polymorphism?" end`)

	if out != "What is polymorphism?" {
		t.Errorf("expected quoted question, got %q", out)
	}
}

func TestQuestion_FirstQuoteWins(t *testing.T) {
	out := sanitize.Question(`"First question?" and also "Second question?"`)

	if out != "First question?" {
		t.Errorf("expected first quoted question, got %q", out)
	}
}

func TestQuestion_FallsBackToWholeString(t *testing.T) {
	out := sanitize.Question("  What is polymorphism?  ")

	if out != "What is polymorphism?" {
		t.Errorf("expected trimmed full string, got %q", out)
	}
}

func TestQuestion_EmptyInput(t *testing.T) {
	if out := sanitize.Question("   \n\t "); out != "" {
		t.Errorf("expected empty string for whitespace input, got %q", out)
	}
	if out := sanitize.Question(""); out != "" {
		t.Errorf("expected empty string for empty input, got %q", out)
	}
}

func TestQuestion_SanitizesResult(t *testing.T) {
	out := sanitize.Question(`"What is a **goroutine**?"`)

	if out != "What is a goroutine?" {
		t.Errorf("expected sanitized question, got %q", out)
	}
}

func TestScore_Found(t *testing.T) {
	score, ok := sanitize.Score("1. Score: 85\n2. Strengths: clear")
	if !ok {
		t.Fatal("expected score to be found")
	}
	if score != 85 {
		t.Errorf("expected 85, got %d", score)
	}
}

func TestScore_FirstMatchWins(t *testing.T) {
	score, ok := sanitize.Score("Score: 70 ... revised Score: 90")
	if !ok || score != 70 {
		t.Errorf("expected first match 70, got %d (ok=%v)", score, ok)
	}
}

func TestScore_Missing(t *testing.T) {
	if _, ok := sanitize.Score("great answer, keep going"); ok {
		t.Error("expected no score in unlabeled feedback")
	}
}

func TestScore_NoSpaceAfterLabel(t *testing.T) {
	score, ok := sanitize.Score("Score:95")
	if !ok || score != 95 {
		t.Errorf("expected 95, got %d (ok=%v)", score, ok)
	}
}
