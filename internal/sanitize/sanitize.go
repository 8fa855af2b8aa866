// Package sanitize cleans raw LLM output before it reaches a user.
// Small local models leak reasoning markup, markdown emphasis, and
// erratic whitespace; everything here is a pure text transform that is
// safe to apply more than once.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	thinkSpan   = regexp.MustCompile(`(?s)<think>.*?</think>`)
	tagSpan     = regexp.MustCompile(`<[^>]*>`)
	boldMarks   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletSpace = regexp.MustCompile(`-\s+`)
	spaceRun    = regexp.MustCompile(`\s+`)
	sectionHead = regexp.MustCompile(`(\d+\.\s\S+?:)`)
	quoted      = regexp.MustCompile(`"(.*?)"`)
	scoreLabel  = regexp.MustCompile(`Score:\s*(\d+)`)
)

// Response strips model deliberation and markdown noise from raw LLM text.
// <think> spans must never reach the user; the rest is cosmetic repair.
// The line break reinserted before numbered section labels ("1. Score:")
// keeps structured feedback readable after whitespace collapsing.
func Response(raw string) string {
	cleaned := thinkSpan.ReplaceAllString(raw, "")
	cleaned = tagSpan.ReplaceAllString(cleaned, "")
	cleaned = boldMarks.ReplaceAllString(cleaned, "$1")
	cleaned = bulletSpace.ReplaceAllString(cleaned, "- ")
	cleaned = strings.TrimSpace(spaceRun.ReplaceAllString(cleaned, " "))
	cleaned = sectionHead.ReplaceAllString(cleaned, "\n$1")
	return cleaned
}

// Question pulls a single interview question out of free-form model text.
// The prompts ask the model to put the question in double quotes; the first
// quoted substring wins. Without quotes the whole trimmed response is used,
// so a model that answers plainly still produces a usable question.
func Question(raw string) string {
	if m := quoted.FindStringSubmatch(raw); m != nil {
		return Response(m[1])
	}
	return Response(strings.TrimSpace(raw))
}

// Score extracts the first "Score: N" label from feedback text. The second
// return is false when no label is present; callers skip scoring for that
// turn rather than treating the miss as an error.
func Score(feedback string) (int, bool) {
	m := scoreLabel.FindStringSubmatch(feedback)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
