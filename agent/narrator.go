// Package agent generates natural language narratives for daily trading
// reviews through the Gemini API.
package agent

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Narrator is a chat with a trading review analyst.
type Narrator struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewNarrator creates a review narrator with its analyst persona.
func NewNarrator() *Narrator {
	return &Narrator{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a trading review analyst. The user sends you the structured
			facts of one trading day: trade count, traded notional, realized
			profit and loss, and the list of executions.

			Write a short narrative review of that day in the language of the
			instrument names. Mention what was bought and sold, the realized
			result, and anything notable like a position fully closed or
			re-opened. Stay factual, never invent trades or prices, and never
			give investment advice.
		`}}},
		},
	}
}

// NewClient creates the Gemini client from the GEMINI_API_KEY environment
// variable.
func NewClient(ctx context.Context) (*genai.Client, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return genai.NewClient(ctx, nil)
}

// Start creates the chat session.
func (n *Narrator) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, n.ModelName, n.Config, nil)
	if err != nil {
		return err
	}
	n.chat = chat
	return nil
}

// Narrate sends the day's facts and returns the narrative text. The session
// keeps context, so follow-up days can refer to earlier ones.
func (n *Narrator) Narrate(ctx context.Context, facts string) (string, error) {
	if n.chat == nil {
		return "", fmt.Errorf("narrator is not started")
	}
	resp, err := n.chat.Send(ctx, &genai.Part{Text: facts})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the narrator")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
