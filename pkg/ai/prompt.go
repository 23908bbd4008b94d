package ai

import (
	"strings"

	"github.com/documind-ai/documind/pkg/types"
)

const PROMPT_VAR_RELEVANT_PASSAGE = "${relevant_passage}"

// FALLBACK_ANSWER is the exact phrase the model is instructed to return
// when the context does not contain the answer. Receiving it is a
// successful generation, never an error.
const FALLBACK_ANSWER = "I couldn't find this information in the document."

const PROMPT_QA_EN = `Answer questions using only the provided context. Give direct, concise answers without any preface like "Based on the document", "According to the context", or "The document states". Just provide the answer directly.

If you cannot find the answer in the context, simply say "` + FALLBACK_ANSWER + `"

Context:
` + PROMPT_VAR_RELEVANT_PASSAGE

// BuildQAPrompt renders the fixed system instruction with the retrieved
// chunks in ranked order, best first, separated by blank lines.
func BuildQAPrompt(chunks []string) string {
	passage := strings.TrimSpace(strings.Join(chunks, "\n\n"))
	if passage == "" {
		passage = "null"
	}
	return strings.ReplaceAll(PROMPT_QA_EN, PROMPT_VAR_RELEVANT_PASSAGE, passage)
}

// BuildQAMessages assembles the full prompt: system instruction with
// context, prior turns replayed oldest first, then the current question.
// Assembly is purely positional; nothing is re-sorted or deduplicated, so
// identical inputs always yield the identical prompt.
func BuildQAMessages(chunks []string, history []types.QAPair, question string) []Message {
	messages := make([]Message, 0, len(history)*2+2)
	messages = append(messages, Message{
		Role:    types.USER_ROLE_SYSTEM,
		Content: BuildQAPrompt(chunks),
	})

	for _, pair := range history {
		if pair.Question == "" || pair.Answer == "" {
			// unpaired turns are representable but never replayed
			continue
		}
		messages = append(messages,
			Message{Role: types.USER_ROLE_USER, Content: pair.Question},
			Message{Role: types.USER_ROLE_ASSISTANT, Content: pair.Answer},
		)
	}

	return append(messages, Message{Role: types.USER_ROLE_USER, Content: question})
}
