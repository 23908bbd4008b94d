package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/documind-ai/documind/pkg/types"
)

func TestBuildQAPrompt(t *testing.T) {
	prompt := BuildQAPrompt([]string{"first chunk", "second chunk"})

	assert.Contains(t, prompt, "first chunk\n\nsecond chunk")
	assert.Contains(t, prompt, FALLBACK_ANSWER)
	assert.NotContains(t, prompt, PROMPT_VAR_RELEVANT_PASSAGE)
}

func TestBuildQAPromptEmptyContext(t *testing.T) {
	prompt := BuildQAPrompt(nil)
	assert.Contains(t, prompt, "Context:\nnull")
}

func TestBuildQAPromptDeterministic(t *testing.T) {
	chunks := []string{"ranked first", "ranked second", "ranked third"}
	assert.Equal(t, BuildQAPrompt(chunks), BuildQAPrompt(chunks))

	// chunk order is preserved, not re-sorted
	prompt := BuildQAPrompt(chunks)
	assert.Less(t, strings.Index(prompt, "ranked first"), strings.Index(prompt, "ranked second"))
	assert.Less(t, strings.Index(prompt, "ranked second"), strings.Index(prompt, "ranked third"))
}

func TestBuildQAMessages(t *testing.T) {
	history := []types.QAPair{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}

	messages := BuildQAMessages([]string{"chunk"}, history, "q3")
	require.Len(t, messages, 6)

	assert.Equal(t, types.USER_ROLE_SYSTEM, messages[0].Role)
	assert.Equal(t, types.USER_ROLE_USER, messages[1].Role)
	assert.Equal(t, "q1", messages[1].Content)
	assert.Equal(t, types.USER_ROLE_ASSISTANT, messages[2].Role)
	assert.Equal(t, "a1", messages[2].Content)
	assert.Equal(t, "q2", messages[3].Content)
	assert.Equal(t, "a2", messages[4].Content)
	assert.Equal(t, types.USER_ROLE_USER, messages[5].Role)
	assert.Equal(t, "q3", messages[5].Content)
}

func TestBuildQAMessagesSkipsUnpairedTurns(t *testing.T) {
	history := []types.QAPair{
		{Question: "answered", Answer: "yes"},
		{Question: "dangling", Answer: ""},
	}

	messages := BuildQAMessages(nil, history, "next")
	require.Len(t, messages, 4)
	assert.Equal(t, "answered", messages[1].Content)
	assert.Equal(t, "next", messages[3].Content)
}

func TestBuildQAMessagesNoHistory(t *testing.T) {
	messages := BuildQAMessages([]string{"c"}, nil, "only question")
	require.Len(t, messages, 2)
	assert.Equal(t, types.USER_ROLE_SYSTEM, messages[0].Role)
	assert.Equal(t, "only question", messages[1].Content)
}
