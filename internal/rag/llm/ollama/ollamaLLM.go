package ollama

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/rag/llm"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

type llmClient struct {
	api       openai.Client
	modelName string
	prompt    string
}

var logger *logger_i.Logger
var ollamaClient *llmClient
var once sync.Once

// GetOllamaClient connects to a local Ollama daemon over its OpenAI compatible
// /v1 endpoint. Everything stays on the host, no request leaves the machine.
func GetOllamaClient(baseURL string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_ollama")
		api := openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey("ollama"),
		)
		ollamaClient = &llmClient{api: api, modelName: modelName, prompt: config.ModelContext}
		logger.Info("Ollama client created", "model", modelName)
	})

	if ollamaClient == nil {
		return nil
	}
	return &llmClient{api: ollamaClient.api, modelName: ollamaClient.modelName, prompt: ollamaClient.prompt}
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string, messageHistory []string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := buildUserPrompt(userQuery, matches, messageHistory)

	var lastErr error
	for attempt := 0; attempt <= config.ModelRetryCount; attempt++ {
		if attempt > 0 {
			log.Debug("retrying chat completion", "attempt", attempt)
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		callCtx, cancel := context.WithTimeout(ctx, config.ModelCallTimeout)
		resp, err := c.api.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.modelName),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(c.prompt),
				openai.UserMessage(userPrompt),
			},
		})
		cancel()

		if err != nil {
			lastErr = err
			log.Error("chat completion failed", "error", err.Error(), "attempt", attempt)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = faults.New(faults.ModelUnavailable, "model %s returned no choices", c.modelName)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", faults.Wrap(faults.ModelUnavailable, lastErr, "chat model %s unreachable after %d attempts", c.modelName, config.ModelRetryCount+1)
}

// buildUserPrompt assembles retrieved context and prior turns into one prompt.
// With no matches the model is told to answer from general knowledge and say
// the documents did not cover the question.
func buildUserPrompt(userQuery string, matches []string, messageHistory []string) string {
	var b strings.Builder

	if len(messageHistory) > 0 {
		b.WriteString("Conversation so far:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}

	if len(matches) > 0 {
		b.WriteString("Context from the ingested documents:\n")
		b.WriteString(strings.Join(matches, "\n"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "User Question: %s", userQuery)
	} else {
		b.WriteString("No relevant passages were found in the ingested documents. ")
		b.WriteString("Answer from general knowledge and mention that the loaded documents do not cover this question.\n\n")
		fmt.Fprintf(&b, "User Question: %s", userQuery)
	}

	return b.String()
}

func (c *llmClient) Healthy(ctx context.Context) error {
	_, err := c.api.Models.List(ctx)
	if err != nil {
		return faults.Wrap(faults.ModelUnavailable, err, "ollama model list")
	}
	return nil
}
