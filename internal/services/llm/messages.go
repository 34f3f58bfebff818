package llm

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"google.golang.org/genai"
)

func validateMessages(messages []interfaces.Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("messages cannot be empty")
	}
	for _, msg := range messages {
		if msg.Role == models.RoleUser {
			return nil
		}
	}
	return fmt.Errorf("at least one message must have role 'user'")
}

// splitSystem returns the first system message's text and the remaining conversation
func splitSystem(messages []interfaces.Message) (string, []interfaces.Message) {
	var systemText string
	rest := make([]interfaces.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == models.RoleSystem {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}
		rest = append(rest, msg)
	}
	return systemText, rest
}

// convertMessagesToOpenAI keeps system messages inline; OpenAI-compatible APIs accept them as turns
func convertMessagesToOpenAI(messages []interfaces.Message) ([]openai.ChatCompletionMessage, error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case models.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case models.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		converted = append(converted, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return converted, nil
}

func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, string, error) {
	if err := validateMessages(messages); err != nil {
		return nil, "", err
	}

	systemText, conversation := splitSystem(messages)
	claudeMessages := make([]anthropic.MessageParam, 0, len(conversation))
	for _, msg := range conversation {
		if msg.Role == models.RoleAssistant {
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			continue
		}
		claudeMessages = append(claudeMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
	}
	return claudeMessages, systemText, nil
}

func convertMessagesToGemini(messages []interfaces.Message) ([]*genai.Content, string, error) {
	if err := validateMessages(messages); err != nil {
		return nil, "", err
	}

	systemText, conversation := splitSystem(messages)
	contents := make([]*genai.Content, 0, len(conversation))
	for _, msg := range conversation {
		role := genai.RoleUser
		if msg.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}
	return contents, systemText, nil
}
