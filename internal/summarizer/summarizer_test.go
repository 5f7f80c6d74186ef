package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "Solar power is the dominant topic. Cats sleep a lot. Solar panels convert solar energy into power. Solar energy research into panels keeps growing."
	out := Summarize(text, 2)

	first := strings.Index(out, "Solar panels convert")
	second := strings.Index(out, "Solar energy research")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.NotContains(t, out, "Cats sleep")
}

func TestSummarizeShortText(t *testing.T) {
	assert.Equal(t, "no sentence markers here", Summarize("  no sentence markers here  ", 3))
}

func TestSummarizeBoundsSentenceCount(t *testing.T) {
	text := strings.Repeat("One sentence here. ", 20)
	out := Summarize(text, 3)
	assert.LessOrEqual(t, strings.Count(out, "."), 3)
}
