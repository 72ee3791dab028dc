package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

func testCharacter() model.Character {
	return model.Character{
		ID:         "ch1",
		Name:       "Mika",
		Definition: "A cheerful barista who loves rainy days.",
		Language:   "English",
	}
}

func englishUser() model.UserProfile {
	return model.UserProfile{Name: "Sam", BaseLanguage: "English"}
}

func TestCompose_EmbedsDefinitionVerbatim(t *testing.T) {
	out := Compose(testCharacter(), model.ChatModeMessage, "", nil, englishUser())

	assert.Contains(t, out, "A cheerful barista who loves rainy days.")
	assert.Contains(t, out, "You are Mika.")
	assert.True(t, strings.HasPrefix(out, headingCharacter))
}

func TestCompose_ModeRules(t *testing.T) {
	t.Run("message mode forbids actions", func(t *testing.T) {
		out := Compose(testCharacter(), model.ChatModeMessage, "", nil, englishUser())
		assert.Contains(t, out, messageModeRules)
		assert.NotContains(t, out, immersionModeRules)
	})

	for _, mode := range []model.ChatMode{model.ChatModeImmersion, model.ChatModeFree} {
		t.Run(string(mode)+" mode allows parentheticals", func(t *testing.T) {
			out := Compose(testCharacter(), mode, "", nil, englishUser())
			assert.Contains(t, out, immersionModeRules)
			assert.NotContains(t, out, messageModeRules)
		})
	}
}

func TestCompose_TranslationMandate(t *testing.T) {
	t.Run("same language has no mandate", func(t *testing.T) {
		out := Compose(testCharacter(), model.ChatModeMessage, "", nil, model.UserProfile{BaseLanguage: "english"})
		assert.NotContains(t, out, headingLanguage)
	})

	t.Run("different language requires the marker", func(t *testing.T) {
		ch := testCharacter()
		ch.Language = "Japanese"
		out := Compose(ch, model.ChatModeMessage, "", nil, englishUser())
		assert.Contains(t, out, headingLanguage)
		assert.Contains(t, out, "You speak Japanese")
		assert.Contains(t, out, "⧉")
		assert.Contains(t, out, "Narration and parenthetical descriptions are not translated.")
	})

	t.Run("unset language has no mandate", func(t *testing.T) {
		ch := testCharacter()
		ch.Language = ""
		out := Compose(ch, model.ChatModeMessage, "", nil, englishUser())
		assert.NotContains(t, out, headingLanguage)
	})
}

func TestCompose_BubbleProtocolAlwaysPresent(t *testing.T) {
	out := Compose(testCharacter(), model.ChatModeFree, "", nil, englishUser())

	assert.Contains(t, out, headingBubbles)
	assert.Contains(t, out, "[SPLIT]")
	assert.Contains(t, out, "80 characters")
	assert.Contains(t, out, "20 characters")
	assert.Contains(t, out, "fenced code block")
}

func TestCompose_MemoryAndPersona(t *testing.T) {
	t.Run("empty memory and persona are omitted", func(t *testing.T) {
		out := Compose(testCharacter(), model.ChatModeMessage, "  ", nil, englishUser())
		assert.NotContains(t, out, headingMemory)
		assert.NotContains(t, out, headingSnippets)
		assert.NotContains(t, out, headingPersona)
	})

	t.Run("sections appear in order", func(t *testing.T) {
		profile := englishUser()
		profile.Persona = "A night-shift nurse."
		out := Compose(testCharacter(), model.ChatModeMessage, "They met last spring.", []string{"likes oolong", "has a cat"}, profile)

		memIdx := strings.Index(out, headingMemory)
		snipIdx := strings.Index(out, headingSnippets)
		personaIdx := strings.Index(out, headingPersona)
		assert.Greater(t, memIdx, strings.Index(out, headingBubbles))
		assert.Greater(t, snipIdx, memIdx)
		assert.Greater(t, personaIdx, snipIdx)

		assert.Contains(t, out, "They met last spring.")
		assert.Contains(t, out, "- likes oolong\n- has a cat")
		assert.Contains(t, out, "The user is Sam.\nA night-shift nurse.")
	})

	t.Run("character persona overrides profile persona", func(t *testing.T) {
		ch := testCharacter()
		ch.UserPersona = "An old friend from school."
		profile := englishUser()
		profile.Persona = "ignored"
		out := Compose(ch, model.ChatModeMessage, "", nil, profile)
		assert.Contains(t, out, "An old friend from school.")
		assert.NotContains(t, out, "ignored")
	})
}

func TestCompose_Deterministic(t *testing.T) {
	ch := testCharacter()
	ch.Language = "French"
	profile := englishUser()
	profile.Persona = "persona"

	first := Compose(ch, model.ChatModeImmersion, "memory", []string{"a", "b"}, profile)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compose(ch, model.ChatModeImmersion, "memory", []string{"a", "b"}, profile))
	}
}
