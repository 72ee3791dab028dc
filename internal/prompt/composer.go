// Package prompt builds the system prompt sent ahead of every chat completion.
//
// Compose is pure string assembly: the same inputs always produce the same
// bytes, which keeps prompts diffable in tests and logs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
	"github.com/Babyaovo/Yaouo-sub000/internal/reply"
)

// Section headings.
const (
	headingCharacter = "[Character]"
	headingRules     = "[Reply Rules]"
	headingLanguage  = "[Language]"
	headingBubbles   = "[Message Splitting]"
	headingMemory    = "[Core Memory]"
	headingSnippets  = "[Active Memories]"
	headingPersona   = "[User Persona]"
)

const messageModeRules = `You are chatting through a phone messaging app. Reply with spoken dialogue only.
- Do not describe actions, expressions, scenery or inner thoughts.
- Do not use parentheses, asterisks or any other markup for non-dialogue content.
- Plain text only.`

const immersionModeRules = `You may describe actions and psychological states in parentheses alongside your dialogue.
- A parenthetical contains no punctuation inside it and is never nested.
- Separate several independent actions inside one parenthetical with spaces.
- Everything outside parentheses is spoken dialogue.`

// bubbleProtocol tells the model how to mark bubble boundaries.
var bubbleProtocol = fmt.Sprintf(`Split your reply into several chat bubbles by inserting %[1]s where a real person would send a new message:
- insert %[1]s at a topic shift, an intent shift, or when a paragraph grows beyond about 80 characters;
- never split in the middle of a clause;
- never split when the combined adjacent text is under about 20 characters;
- never start or end the reply with %[1]s;
- never place %[1]s inside a fenced code block.`, reply.Delimiter)

func languageMandate(target, base string) string {
	return fmt.Sprintf(`You speak %[1]s. After every line of dialogue, add the %[2]s translation on the next line, starting with %[3]s.
Example:
<a line in %[1]s>
%[3]s <the same line in %[2]s>
Narration and parenthetical descriptions are not translated.`, target, base, reply.TranslationMarker)
}

// Compose builds the system prompt for one completion request.
func Compose(character model.Character, mode model.ChatMode, coreMemory string, snippets []string, profile model.UserProfile) string {
	var sb strings.Builder

	writeSection(&sb, headingCharacter, fmt.Sprintf("You are %s.\n%s", character.Name, character.Definition))

	if mode == model.ChatModeMessage {
		writeSection(&sb, headingRules, messageModeRules)
	} else {
		writeSection(&sb, headingRules, immersionModeRules)
	}

	if needsTranslation(character.Language, profile.BaseLanguage) {
		writeSection(&sb, headingLanguage, languageMandate(character.Language, profile.BaseLanguage))
	}

	writeSection(&sb, headingBubbles, bubbleProtocol)

	if memory := strings.TrimSpace(coreMemory); memory != "" {
		writeSection(&sb, headingMemory, memory)
	}

	if len(snippets) > 0 {
		lines := make([]string, len(snippets))
		for i, s := range snippets {
			lines[i] = "- " + s
		}
		writeSection(&sb, headingSnippets, strings.Join(lines, "\n"))
	}

	persona := character.UserPersona
	if persona == "" {
		persona = profile.Persona
	}
	if persona = strings.TrimSpace(persona); persona != "" {
		if profile.Name != "" {
			persona = fmt.Sprintf("The user is %s.\n%s", profile.Name, persona)
		}
		writeSection(&sb, headingPersona, persona)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// needsTranslation reports whether the character speaks a language other than
// the user's base language. An unset language on either side means no mandate.
func needsTranslation(target, base string) bool {
	target, base = strings.TrimSpace(target), strings.TrimSpace(base)
	if target == "" || base == "" {
		return false
	}
	return !strings.EqualFold(target, base)
}

func writeSection(sb *strings.Builder, heading, body string) {
	sb.WriteString(heading)
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n\n")
}
