package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "three bubbles", raw: "Hi[SPLIT]there[SPLIT]friend", expected: []string{"Hi", "there", "friend"}},
		{name: "no delimiter", raw: "  just one reply \n", expected: []string{"just one reply"}},
		{name: "trims segments", raw: " a \n[SPLIT]\n b ", expected: []string{"a", "b"}},
		{name: "drops empty segments", raw: "[SPLIT]a[SPLIT][SPLIT]  [SPLIT]b[SPLIT]", expected: []string{"a", "b"}},
		{name: "case sensitive", raw: "a[split]b", expected: []string{"a[split]b"}},
		{name: "empty input", raw: "", expected: []string{}},
		{name: "only whitespace", raw: "   ", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Split(tc.raw))
		})
	}
}

func TestSplit_Idempotent(t *testing.T) {
	inputs := []string{
		"Hi[SPLIT]there[SPLIT]friend",
		"  one  ",
		"[SPLIT][SPLIT]x[SPLIT] y [SPLIT]",
		"line one\nline two[SPLIT]\n\nthird",
		"",
	}
	for _, in := range inputs {
		first := Split(in)
		assert.Equal(t, first, Split(Join(first)), "input %q", in)
	}
}

func TestParseTranslation(t *testing.T) {
	t.Run("with translation", func(t *testing.T) {
		tr := ParseTranslation("A\n⧉ B")
		assert.True(t, tr.HasTranslation)
		assert.Equal(t, "A", tr.Original)
		assert.Equal(t, "B", tr.Translation)
	})

	t.Run("without marker", func(t *testing.T) {
		tr := ParseTranslation("A")
		assert.False(t, tr.HasTranslation)
		assert.Equal(t, "A", tr.Original)
		assert.Empty(t, tr.Translation)
	})

	t.Run("marker not after newline", func(t *testing.T) {
		tr := ParseTranslation("A ⧉ B")
		assert.False(t, tr.HasTranslation)
		assert.Equal(t, "A ⧉ B", tr.Original)
	})

	t.Run("several translation lines are rejoined", func(t *testing.T) {
		tr := ParseTranslation("Bonjour\n⧉ Hello\nÇa va?\n⧉Are you ok?  ")
		assert.True(t, tr.HasTranslation)
		assert.Equal(t, "Bonjour", tr.Original)
		assert.Equal(t, "Hello\nÇa va?\nAre you ok?", tr.Translation)
	})
}
