// internal/agent/openai.go
//
// LLM player backed by an OpenAI-compatible chat completion API.
// Responsibilities:
//   - Build a compact prompt from the game view (letters, center, found words).
//   - Parse candidate words out of the model's reply.
//   - Report token usage from the API response so the harness can price runs.
//
// Configuration:
//   OPENAI_API_KEY  required
//   OPENAI_MODEL    optional, defaults to gpt-4o-mini
//   OPENAI_BASE_URL optional, for local OpenAI-compatible servers

package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = "You are playing a word puzzle. You will be given seven letters " +
	"and a required center letter. Propose real English words of at least 4 letters " +
	"that use only the given letters (repeats allowed) and contain the center letter. " +
	"Longer words score more; a word using all seven letters earns a large bonus. " +
	"Reply with one word per line and nothing else."

// OpenAI is a Player that asks a chat model for words.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds the player from environment configuration. A non-empty
// model overrides the OPENAI_MODEL env var (scenario files use this).
func NewOpenAI(model string) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
	}
	if model == "" {
		model = defaultModel
		log.Warn().Str("model", model).Msg("OPENAI_MODEL not set, using default")
	}
	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	log.Info().Str("model", model).Msg("initializing OpenAI player")
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// NewOpenAIWith builds the player from an explicit client and model;
// used by tests with stub servers.
func NewOpenAIWith(client *openai.Client, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

// Propose asks the model for words and returns them with the token cost.
func (a *OpenAI) Propose(ctx context.Context, v View) (Turn, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(v)},
		},
	}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Turn{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Turn{}, errors.New("chat completion returned no choices")
	}
	words := ParseWords(resp.Choices[0].Message.Content)
	log.Debug().Int("words", len(words)).Int("tokens", resp.Usage.TotalTokens).
		Str("finish", string(resp.Choices[0].FinishReason)).Msg("model turn")
	return Turn{Words: words, TokensUsed: resp.Usage.TotalTokens}, nil
}

// buildPrompt renders the view the way a human would read the board.
func buildPrompt(v View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Letters: %s\nCenter letter: %s\nCurrent score: %d\n", v.Letters, v.Center, v.Score)
	if len(v.FoundWords) > 0 {
		fmt.Fprintf(&b, "Already found (do not repeat): %s\n", strings.Join(v.FoundWords, ", "))
	}
	b.WriteString("List new words now.")
	return b.String()
}

// ParseWords extracts candidate words from a model reply: one per line or
// comma-separated, stripped of list markers and non-letters, lowercased,
// deduplicated in order.
func ParseWords(reply string) []string {
	seen := map[string]bool{}
	var out []string
	for _, line := range strings.FieldsFunc(reply, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	}) {
		w := strings.ToLower(strings.TrimSpace(line))
		w = strings.TrimLeft(w, "-*0123456789. )")
		w = strings.TrimSpace(w)
		if w == "" || !allLetters(w) || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func allLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
