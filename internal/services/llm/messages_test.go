package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"google.golang.org/genai"
)

var conversation = []interfaces.Message{
	{Role: "system", Content: "You are an SEO assistant."},
	{Role: "user", Content: "Hi"},
	{Role: "assistant", Content: "Hello"},
	{Role: "user", Content: "Audit my page"},
}

func TestConvertMessagesToOpenAI(t *testing.T) {
	converted, err := convertMessagesToOpenAI(conversation)
	require.NoError(t, err)
	require.Len(t, converted, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, converted[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, converted[2].Role)
	assert.Equal(t, "Audit my page", converted[3].Content)
}

func TestConvertMessagesToClaude(t *testing.T) {
	converted, system, err := convertMessagesToClaude(conversation)
	require.NoError(t, err)
	assert.Equal(t, "You are an SEO assistant.", system)
	assert.Len(t, converted, 3)
}

func TestConvertMessagesToGemini(t *testing.T) {
	converted, system, err := convertMessagesToGemini(conversation)
	require.NoError(t, err)
	assert.Equal(t, "You are an SEO assistant.", system)
	require.Len(t, converted, 3)
	assert.Equal(t, genai.RoleModel, converted[1].Role)
}

func TestConvertMessages_RequiresUserMessage(t *testing.T) {
	_, err := convertMessagesToOpenAI(nil)
	assert.Error(t, err)

	_, _, err = convertMessagesToClaude([]interfaces.Message{{Role: "system", Content: "only system"}})
	assert.Error(t, err)
}
